package postgres

import "time"

type Config struct {
	DSN            string        `yaml:"dsn"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`

	// Autocommit is the mode the connection starts in.
	Autocommit bool `yaml:"autocommit"`

	// Sealed connections refuse commit/rollback rebinding,
	// so scopes run on them without the guard.
	Sealed bool `yaml:"sealed"`
}
