package handler

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// UploadDir holds the transient upload artifacts (raw export plus the
	// cleaned CSV) while an ingestion request is in flight.
	UploadDir string `envconfig:"UPLOAD_DIR" default:"uploads"`
	// PublicDir is the web root; trade images land under its uploads/
	// subdirectory and are stored in the database as paths relative to it.
	PublicDir string `envconfig:"PUBLIC_DIR" default:"public"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
