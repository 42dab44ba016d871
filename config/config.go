package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppName       string `json:"app_name"`
	ListenIP      string `json:"listen_ip"`
	ListenPort    int    `json:"listen_port"`
	SessionKey    string `json:"session_key"`
	DBPath        string `json:"db_path"`
	EnableCaptcha bool   `json:"enable_captcha"`
}

var AppConfig Config

func LoadConfig(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&AppConfig); err != nil {
		return err
	}

	// Override with environment variables if present
	if envKey := os.Getenv("DAYBOOK_SESSION_KEY"); envKey != "" {
		AppConfig.SessionKey = envKey
	}
	if envPath := os.Getenv("DAYBOOK_DB_PATH"); envPath != "" {
		AppConfig.DBPath = envPath
	}
	if envPort := os.Getenv("DAYBOOK_LISTEN_PORT"); envPort != "" {
		if port, err := strconv.Atoi(envPort); err == nil {
			AppConfig.ListenPort = port
		}
	}
	if envCaptcha := os.Getenv("DAYBOOK_ENABLE_CAPTCHA"); envCaptcha != "" {
		AppConfig.EnableCaptcha = envCaptcha == "1" || envCaptcha == "true"
	}

	if AppConfig.DBPath == "" {
		AppConfig.DBPath = "./daybook.db"
	}

	// If no key is provided or it's the placeholder, generate a secure random one
	if AppConfig.SessionKey == "" || AppConfig.SessionKey == "CHANGE_ME_IN_PRODUCTION" {
		log.Println("WARNING: No session key configured. Generating a random key. Sessions will be invalidated on restart.")
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err != nil {
			return err
		}
		AppConfig.SessionKey = hex.EncodeToString(randomKey)
	}

	return nil
}
