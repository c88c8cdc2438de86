package main

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"pineapple-server/pkg/db"
)

const connectTimeout = time.Second * 10

func main() {
	waitForDB(connectTimeout)
	db.Migrate()
}

// waitForDB blocks until the database accepts connections.
// db.Instance panics when it cannot connect, so probe it under recover.
func waitForDB(timeout time.Duration) {
	deadline := time.After(timeout)
	for {
		select {
		case <-deadline:
			logrus.Fatal("database did not come up in time")
		default:
			dbh := func() (instance *sql.DB) {
				defer func() { _ = recover() }()
				return db.Instance()
			}()

			if dbh != nil {
				return
			}

			time.Sleep(time.Millisecond * 500)
		}
	}
}
