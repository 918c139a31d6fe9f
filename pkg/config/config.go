package config

import (
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"
)

type Config struct {
	Host        string `json:"host"`        // The domain name of the server.
	ServerAddr  string `json:"serverAddr"`  // The address the server endpoint binds to.
	MetricsAddr string `json:"metricsAddr"` // The address the metrics endpoint binds to.

	Auth struct {
		AccessTokenSecret     string `json:"accessTokenSecret"`
		RefreshTokenSecret    string `json:"refreshTokenSecret"`
		AccessTokenExpiryHour int    `json:"accessTokenExpiryHour"`
	} `json:"auth"`

	Postgres struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		DBName   string `json:"dbname"`
		User     string `json:"user"`
		Password string `json:"password"`
		SSLMode  string `json:"sslmode"`
		TimeZone string `json:"TimeZone"`
		// Optional read replica, routed via dbresolver when set.
		ReplicaHost string `json:"replicaHost"`
		ReplicaPort string `json:"replicaPort"`
	} `json:"postgres"`

	GitHub struct {
		APIBaseURL string `json:"apiBaseURL"` // Override for GitHub Enterprise; default https://api.github.com
	} `json:"github"`

	// Key used to seal stored personal access tokens (base64, 32 bytes).
	CredentialKey string `json:"credentialKey"`

	SMTP struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		User     string `json:"user"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"smtp"`

	Retention struct {
		ActivityDays int    `json:"activityDays"` // Activity rows older than this are swept; 0 disables.
		Spec         string `json:"spec"`         // Cron spec for the sweeper, default "0 3 * * *".
	} `json:"retention"`
}

var (
	once   sync.Once
	config *Config
)

func GetConfig() *Config {
	once.Do(func() {
		config = initConfig()
	})
	return config
}

func IsDebugMode() bool {
	return gin.Mode() == gin.DebugMode
}

// initConfig reads the configuration file. In debug mode it reads the local
// debug-config.yaml (path overridable via GATEWAY_DEBUG_CONFIG_PATH),
// otherwise the config.yaml mounted from the deployment.
func initConfig() *Config {
	config := &Config{}
	var configPath string
	if IsDebugMode() {
		if os.Getenv("GATEWAY_DEBUG_CONFIG_PATH") != "" {
			configPath = os.Getenv("GATEWAY_DEBUG_CONFIG_PATH")
		} else {
			configPath = "./etc/debug-config.yaml"
		}
	} else {
		configPath = "/etc/config/config.yaml"
	}
	klog.Info("config path: ", configPath)

	if err := readConfig(configPath, config); err != nil {
		klog.Error("init config", err)
		panic(err)
	}
	return config
}

func readConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, config)
}
