package utils

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type ResponseData struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}

// PanicIfNeeded panics on error so the recovery middleware can translate
// typed errors into HTTP responses.
func PanicIfNeeded(err any, message ...string) {
	if err != nil {
		if len(message) > 0 {
			panic(message[0])
		}
		panic(err)
	}
}

// LoadConfig reads the optional .env file from the given path and exposes
// environment variables through viper.
func LoadConfig(path string) {
	if err := godotenv.Load(path + "/.env"); err != nil {
		if !os.IsNotExist(err) {
			logrus.Warnf("Failed to load .env file: %v", err)
		}
	}
	viper.AutomaticEnv()
}

// CreateFolder creates the given directories if they do not exist yet.
func CreateFolder(folders ...string) error {
	for _, folder := range folders {
		if err := os.MkdirAll(folder, 0755); err != nil {
			return err
		}
	}
	return nil
}

// RemoveFile deletes files, ignoring the ones that are already gone.
func RemoveFile(paths ...string) error {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
