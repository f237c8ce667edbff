package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_GetDSN(t *testing.T) {
	mysql := DatabaseConfig{
		Driver:   DriverMySQL,
		Host:     "db",
		Port:     3306,
		Username: "park",
		Password: "secret",
		Database: "parkline",
	}
	assert.Equal(t, "park:secret@tcp(db:3306)/parkline?charset=utf8mb4&parseTime=True&loc=UTC", mysql.GetDSN())
	assert.False(t, mysql.IsSQLite())

	lite := DatabaseConfig{Driver: "SQLite", Path: "parkline.db"}
	assert.True(t, lite.IsSQLite())
	assert.Equal(t, "parkline.db", lite.GetDSN())
}

func TestAddrs(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", (&ServerConfig{Host: "0.0.0.0", Port: 8080}).GetAddr())
	assert.Equal(t, "localhost:6379", (&RedisConfig{Host: "localhost", Port: 6379}).GetAddr())
}
