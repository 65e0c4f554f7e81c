package db

import (
	"testing"

	"github.com/scrazdxvf/baraholka-backend/internal/config"
)

func TestBuildDSN(t *testing.T) {
	base := config.Config{DBUser: "app", DBPassword: "secret", DBName: "baraholka", DBPort: "3306"}
	tests := []struct {
		name string
		mut  func(*config.Config)
		want string
	}{
		{"bare host", func(c *config.Config) { c.DBHost = "127.0.0.1" },
			"app:secret@tcp(127.0.0.1:3306)/baraholka?charset=utf8mb4&parseTime=True&loc=Local"},
		{"pre-wrapped tcp", func(c *config.Config) { c.DBHost = "tcp(db:3307)" },
			"app:secret@tcp(db:3307)/baraholka?charset=utf8mb4&parseTime=True&loc=Local"},
		{"socket path", func(c *config.Config) { c.DBHost = "/var/run/mysqld/mysqld.sock" },
			"app:secret@unix(/var/run/mysqld/mysqld.sock)/baraholka?charset=utf8mb4&parseTime=True&loc=Local"},
		{"cloud sql instance wins", func(c *config.Config) {
			c.DBHost = "127.0.0.1"
			c.InstanceConnectionName = "proj:region:inst"
		},
			"app:secret@unix(/cloudsql/proj:region:inst)/baraholka?charset=utf8mb4&parseTime=True&loc=Local"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mut(&cfg)
			if got := BuildDSN(&cfg); got != tt.want {
				t.Fatalf("got=%q\nwant=%q", got, tt.want)
			}
		})
	}
}
