package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dsmirnovs/authbox/internal/flagx"
	"github.com/dsmirnovs/authbox/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Interval fields use timex.Duration, which accepts both string values
// such as "10m" and integer nanoseconds. After unmarshalling, its fields are
// copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr      string         `json:"endpoint_addr"`
	DatabaseDSN       string         `json:"database_dsn"`
	SMTPHost          string         `json:"smtp_host"`
	SMTPPort          int            `json:"smtp_port"`
	SMTPUser          string         `json:"smtp_user"`
	SMTPPassword      string         `json:"smtp_password"`
	EmailFrom         string         `json:"email_from"`
	ResetCodeValidity timex.Duration `json:"reset_code_validity"`
	DevRoutes         bool           `json:"dev_routes"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. If no file is named, nothing
// is loaded; if the file cannot be read or parsed, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPUser = c.SMTPUser
	config.SMTPPassword = c.SMTPPassword
	config.EmailFrom = c.EmailFrom
	config.ResetCodeValidity = time.Duration(c.ResetCodeValidity.Duration)
	config.DevRoutes = c.DevRoutes
}
