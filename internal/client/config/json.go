package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/signage/internal/flagx"
	"github.com/dmitrijs2005/signage/internal/timex"
)

// JsonConfig is the DTO for reading client configuration from a JSON file.
type JsonConfig struct {
	ServerBaseURL   string         `json:"server_base_url"`
	ScreenID        string         `json:"screen_id"`
	RefreshInterval timex.Duration `json:"refresh_interval"`
	ClockInterval   timex.Duration `json:"clock_interval"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	DataDir         string         `json:"data_dir"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags, if any. Invalid files panic: a kiosk with a broken
// config should fail loudly at startup, not run with silent defaults.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

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

	config.ServerBaseURL = c.ServerBaseURL
	config.ScreenID = c.ScreenID
	config.RefreshInterval = c.RefreshInterval.Duration
	config.ClockInterval = c.ClockInterval.Duration
	config.RequestTimeout = c.RequestTimeout.Duration
	config.DataDir = c.DataDir
}
