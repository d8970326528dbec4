package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Set up test environment variables
	os.Setenv("botToken", "test-token")
	os.Setenv("PORT", "3001")
	os.Setenv("enviroment", "test")
	defer func() {
		os.Unsetenv("botToken")
		os.Unsetenv("PORT")
		os.Unsetenv("enviroment")
	}()

	// Reset global config
	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.BotToken != "test-token" {
		t.Errorf("BotToken = %v, want %v", config.BotToken, "test-token")
	}

	if config.Port != "3001" {
		t.Errorf("Port = %v, want %v", config.Port, "3001")
	}

	if config.Environment != "test" {
		t.Errorf("Environment = %v, want %v", config.Environment, "test")
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if got := getEnv("TEST_VAR", "default"); got != "test-value" {
		t.Errorf("getEnv() = %v, want %v", got, "test-value")
	}

	if got := getEnv("NON_EXISTENT_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %v, want %v", got, "default")
	}
}

func TestGetEnvInt(t *testing.T) {
	os.Setenv("TEST_INT", "12")
	defer os.Unsetenv("TEST_INT")

	if got := getEnvInt("TEST_INT", 5); got != 12 {
		t.Errorf("getEnvInt() = %v, want %v", got, 12)
	}

	if got := getEnvInt("NON_EXISTENT_INT", 5); got != 5 {
		t.Errorf("getEnvInt() = %v, want %v", got, 5)
	}

	os.Setenv("TEST_INT", "not-a-number")
	if got := getEnvInt("TEST_INT", 5); got != 5 {
		t.Errorf("getEnvInt() with garbage = %v, want %v", got, 5)
	}
}

func TestIsProd(t *testing.T) {
	resetForTesting()
	os.Setenv("enviroment", "prod")
	config, _ := Load()

	if !config.IsProd() {
		t.Error("IsProd() should return true when environment is 'prod'")
	}

	resetForTesting()
	os.Setenv("enviroment", "dev")
	config, _ = Load()

	if config.IsProd() {
		t.Error("IsProd() should return false when environment is not 'prod'")
	}

	os.Unsetenv("enviroment")
}

func TestGet(t *testing.T) {
	resetForTesting()

	// Get should create a new config if none exists
	config := Get()
	if config == nil {
		t.Fatal("Get() returned nil")
	}

	// Get should return the same config on subsequent calls
	config2 := Get()
	if config != config2 {
		t.Error("Get() should return the same config on subsequent calls")
	}
}

func TestDefaultValues(t *testing.T) {
	// Clear all environment variables
	os.Unsetenv("botToken")
	os.Unsetenv("devGuildId")
	os.Unsetenv("mongodbUrl")
	os.Unsetenv("dbName")
	os.Unsetenv("warningsThresh")
	os.Unsetenv("warningsRange")
	os.Unsetenv("retentionDays")
	os.Unsetenv("sweepInterval")
	os.Unsetenv("MQTT_Host")
	os.Unsetenv("MQTT_Port")
	os.Unsetenv("PORT")
	os.Unsetenv("enviroment")

	resetForTesting()
	config, _ := Load()

	// Check default values
	if config.MongoDBURL != "mongodb://localhost:27017" {
		t.Errorf("MongoDBURL default = %v, want %v", config.MongoDBURL, "mongodb://localhost:27017")
	}

	if config.DBName != "PancyCases" {
		t.Errorf("DBName default = %v, want %v", config.DBName, "PancyCases")
	}

	if config.WarningsThresh != 3 {
		t.Errorf("WarningsThresh default = %v, want %v", config.WarningsThresh, 3)
	}

	if config.WarningsRangeDays != 7 {
		t.Errorf("WarningsRangeDays default = %v, want %v", config.WarningsRangeDays, 7)
	}

	if config.RetentionDays != 30 {
		t.Errorf("RetentionDays default = %v, want %v", config.RetentionDays, 30)
	}

	if config.Port != "3000" {
		t.Errorf("Port default = %v, want %v", config.Port, "3000")
	}

	if config.Environment != "dev" {
		t.Errorf("Environment default = %v, want %v", config.Environment, "dev")
	}
}

func TestWarningsThreshFloor(t *testing.T) {
	os.Setenv("warningsThresh", "0")
	defer os.Unsetenv("warningsThresh")

	resetForTesting()
	config, _ := Load()

	if config.WarningsThresh != 1 {
		t.Errorf("WarningsThresh = %v, want floor of 1", config.WarningsThresh)
	}
}
