package cleaner

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Interpreter string `envconfig:"CLEANER_INTERPRETER" default:"python3"`
	Script      string `envconfig:"CLEANER_SCRIPT" default:"csv_cleaner.py"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
