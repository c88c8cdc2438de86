package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"pineapple-server/internal/config"
)

var keys = flag.Bool("keys", false, "also write a JWT signing key pair (private.key, public.pem)")

func main() {
	flag.Parse()

	if *keys {
		writeKeyPair()
	}

	if err := yaml.NewEncoder(os.Stdout).Encode(config.DefaultConfig()); err != nil {
		panic(err)
	}
}

func writeKeyPair() {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		logrus.WithError(err).Fatal("could not generate key")
	}

	privateBytes, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		logrus.WithError(err).Fatal("could not marshal private key")
	}

	publicBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		logrus.WithError(err).Fatal("could not marshal public key")
	}

	writePEM("private.key", "PRIVATE KEY", privateBytes, 0600)
	writePEM("public.pem", "PUBLIC KEY", publicBytes, 0644)
}

func writePEM(filename, blockType string, der []byte, mode os.FileMode) {
	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		logrus.WithError(err).Fatalf("could not create %s", filename)
	}
	defer file.Close()

	if err := pem.Encode(file, &pem.Block{Type: blockType, Bytes: der}); err != nil {
		logrus.WithError(err).Fatalf("could not write %s", filename)
	}

	logrus.WithField("filename", filename).Info("wrote key")
}
