package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/supersim-ai/drivesim/internal/orchestrator"
	"github.com/supersim-ai/drivesim/internal/physics"
)

// FileName is the config file looked up in the config directory.
const FileName = "drivesim.cfg.json"

// MemoryConfig holds JSON file storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
	IncludeFrames  bool   `json:"includeFrames" mapstructure:"includeFrames"`
}

// SQLiteConfig holds in-memory SQLite backend settings
type SQLiteConfig struct {
	OutputPath   string        `json:"outputPath" mapstructure:"outputPath"`
	DumpInterval time.Duration `json:"dumpInterval" mapstructure:"dumpInterval"`
}

// PostgresConfig holds Postgres connection settings
type PostgresConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// StorageConfig selects and configures the drive result sink
type StorageConfig struct {
	Type     string         `json:"type" mapstructure:"type"`
	Memory   MemoryConfig   `json:"memory" mapstructure:"memory"`
	SQLite   SQLiteConfig   `json:"sqlite" mapstructure:"sqlite"`
	Postgres PostgresConfig `json:"postgres" mapstructure:"postgres"`
}

// InfluxConfig holds InfluxDB settings
type InfluxConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	Host      string `json:"host" mapstructure:"host"`
	Port      string `json:"port" mapstructure:"port"`
	Protocol  string `json:"protocol" mapstructure:"protocol"`
	Token     string `json:"token" mapstructure:"token"`
	Org       string `json:"org" mapstructure:"org"`
	Bucket    string `json:"bucket" mapstructure:"bucket"`
	BackupDir string `json:"backupDir" mapstructure:"backupDir"`
}

// URL returns the server URL.
func (c InfluxConfig) URL() string {
	return fmt.Sprintf("%s://%s:%s", c.Protocol, c.Host, c.Port)
}

// OTelConfig holds OpenTelemetry metrics settings
type OTelConfig struct {
	Enabled     bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName string        `json:"serviceName" mapstructure:"serviceName"`
	Endpoint    string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure    bool          `json:"insecure" mapstructure:"insecure"`
	Interval    time.Duration `json:"interval" mapstructure:"interval"`
}

// APIConfig holds result upload settings
type APIConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	ServerURL string `json:"serverUrl" mapstructure:"serverUrl"`
	APIKey    string `json:"apiKey" mapstructure:"apiKey"`
}

// CoachConfig selects the play caller
type CoachConfig struct {
	Type           string        `json:"type" mapstructure:"type"`
	Timeout        time.Duration `json:"timeout" mapstructure:"timeout"`
	FieldGoalRange int           `json:"fieldGoalRange" mapstructure:"fieldGoalRange"`
	OllamaURL      string        `json:"ollamaUrl" mapstructure:"ollamaUrl"`
	OllamaModel    string        `json:"ollamaModel" mapstructure:"ollamaModel"`
}

// GraylogConfig holds GELF log shipping settings
type GraylogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Address string `json:"address" mapstructure:"address"`
}

// Load reads configuration from JSON file and sets default values.
// Defaults stay in effect when the file cannot be read.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("drive.maxPlays", 20)
	viper.SetDefault("drive.startYardLine", 25)
	viper.SetDefault("drive.strategy", "")
	viper.SetDefault("drive.interceptionsAreTurnovers", false)
	viper.SetDefault("drive.xp.touchdown", 100)
	viper.SetDefault("drive.xp.fieldGoal", 30)
	viper.SetDefault("drive.xp.loss", 25)
	viper.SetDefault("drive.xp.firstDown", 10)
	viper.SetDefault("batch.workers", 4)

	viper.SetDefault("coach.type", "heuristic")
	viper.SetDefault("coach.timeout", "5s")
	viper.SetDefault("coach.fieldGoalRange", 45)
	viper.SetDefault("coach.ollamaUrl", "http://localhost:11434")
	viper.SetDefault("coach.ollamaModel", "llama3")

	setPhysicsDefaults(physics.DefaultConfig())

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./drives")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.memory.includeFrames", true)
	viper.SetDefault("storage.sqlite.outputPath", "./drivesim.db")
	viper.SetDefault("storage.sqlite.dumpInterval", "3m")
	viper.SetDefault("storage.postgres.host", "localhost")
	viper.SetDefault("storage.postgres.port", "5432")
	viper.SetDefault("storage.postgres.username", "postgres")
	viper.SetDefault("storage.postgres.password", "postgres")
	viper.SetDefault("storage.postgres.database", "drivesim")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "drivesim")
	viper.SetDefault("influx.bucket", "drives")
	viper.SetDefault("influx.backupDir", "./logs")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "drivesim")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
	viper.SetDefault("otel.interval", "15s")

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.serverUrl", "http://localhost:5000")
	viper.SetDefault("api.apiKey", "")

	viper.SetEnvPrefix("DRIVESIM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

func setPhysicsDefaults(d physics.Config) {
	viper.SetDefault("physics.dt", d.Dt)
	viper.SetDefault("physics.ticks", d.Ticks)
	viper.SetDefault("physics.maxTicks", d.MaxTicks)
	viper.SetDefault("physics.mass", d.Mass)
	viper.SetDefault("physics.damping", d.Damping)
	viper.SetDefault("physics.gravity", d.Gravity)
	viper.SetDefault("physics.fieldLength", d.FieldLength)
	viper.SetDefault("physics.fieldWidth", d.FieldWidth)
	viper.SetDefault("physics.passSpeed", d.PassSpeed)
	viper.SetDefault("physics.throwPhase", d.ThrowPhase)
	viper.SetDefault("physics.carryAltitude", d.CarryAltitude)
	viper.SetDefault("physics.throwAltitude", d.ThrowAltitude)
	viper.SetDefault("physics.interceptCeiling", d.InterceptCeiling)
	viper.SetDefault("physics.interceptRadius", d.InterceptRadius)
	viper.SetDefault("physics.maxInterceptChance", d.MaxInterceptChance)
	viper.SetDefault("physics.catchMin", d.CatchMin)
	viper.SetDefault("physics.catchMax", d.CatchMax)
	viper.SetDefault("physics.catchRadius", d.CatchRadius)
	viper.SetDefault("physics.trailLength", d.TrailLength)
	viper.SetDefault("physics.scaleX", d.ScaleX)
	viper.SetDefault("physics.scaleY", d.ScaleY)
	viper.SetDefault("physics.scaleZ", d.ScaleZ)
	viper.SetDefault("physics.forces.run", d.Forces.Run)
	viper.SetDefault("physics.forces.pursuit", d.Forces.Pursuit)
	viper.SetDefault("physics.forces.dropback", d.Forces.Dropback)
	viper.SetDefault("physics.forces.route", d.Forces.Route)
	viper.SetDefault("physics.forces.cover", d.Forces.Cover)
	viper.SetDefault("physics.forces.yac", d.Forces.YAC)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetPhysicsConfig returns the play simulator constants.
func GetPhysicsConfig() physics.Config {
	return physics.Config{
		Dt:                 viper.GetFloat64("physics.dt"),
		Ticks:              viper.GetInt("physics.ticks"),
		MaxTicks:           viper.GetInt("physics.maxTicks"),
		Mass:               viper.GetFloat64("physics.mass"),
		Damping:            viper.GetFloat64("physics.damping"),
		Gravity:            viper.GetFloat64("physics.gravity"),
		FieldLength:        viper.GetFloat64("physics.fieldLength"),
		FieldWidth:         viper.GetFloat64("physics.fieldWidth"),
		PassSpeed:          viper.GetFloat64("physics.passSpeed"),
		ThrowPhase:         viper.GetFloat64("physics.throwPhase"),
		CarryAltitude:      viper.GetFloat64("physics.carryAltitude"),
		ThrowAltitude:      viper.GetFloat64("physics.throwAltitude"),
		InterceptCeiling:   viper.GetFloat64("physics.interceptCeiling"),
		InterceptRadius:    viper.GetFloat64("physics.interceptRadius"),
		MaxInterceptChance: viper.GetFloat64("physics.maxInterceptChance"),
		CatchMin:           viper.GetFloat64("physics.catchMin"),
		CatchMax:           viper.GetFloat64("physics.catchMax"),
		CatchRadius:        viper.GetFloat64("physics.catchRadius"),
		TrailLength:        viper.GetInt("physics.trailLength"),
		ScaleX:             viper.GetFloat64("physics.scaleX"),
		ScaleY:             viper.GetFloat64("physics.scaleY"),
		ScaleZ:             viper.GetFloat64("physics.scaleZ"),
		Forces: physics.Forces{
			Run:      viper.GetFloat64("physics.forces.run"),
			Pursuit:  viper.GetFloat64("physics.forces.pursuit"),
			Dropback: viper.GetFloat64("physics.forces.dropback"),
			Route:    viper.GetFloat64("physics.forces.route"),
			Cover:    viper.GetFloat64("physics.forces.cover"),
			YAC:      viper.GetFloat64("physics.forces.yac"),
		},
	}
}

// GetCoachConfig returns the play caller settings.
func GetCoachConfig() CoachConfig {
	return CoachConfig{
		Type:           viper.GetString("coach.type"),
		Timeout:        viper.GetDuration("coach.timeout"),
		FieldGoalRange: viper.GetInt("coach.fieldGoalRange"),
		OllamaURL:      viper.GetString("coach.ollamaUrl"),
		OllamaModel:    viper.GetString("coach.ollamaModel"),
	}
}

// GetOrchestratorConfig assembles the drive runner settings.
func GetOrchestratorConfig() orchestrator.Config {
	c := GetCoachConfig()
	return orchestrator.Config{
		MaxPlays:                  viper.GetInt("drive.maxPlays"),
		Ticks:                     viper.GetInt("physics.ticks"),
		CoachTimeout:              c.Timeout,
		FieldGoalRange:            c.FieldGoalRange,
		InterceptionsAreTurnovers: viper.GetBool("drive.interceptionsAreTurnovers"),
		Physics:                   GetPhysicsConfig(),
		XP: orchestrator.XPTable{
			Touchdown: viper.GetInt("drive.xp.touchdown"),
			FieldGoal: viper.GetInt("drive.xp.fieldGoal"),
			Loss:      viper.GetInt("drive.xp.loss"),
			FirstDown: viper.GetInt("drive.xp.firstDown"),
		},
	}
}

// GetStorageConfig returns the result sink settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
			IncludeFrames:  viper.GetBool("storage.memory.includeFrames"),
		},
		SQLite: SQLiteConfig{
			OutputPath:   viper.GetString("storage.sqlite.outputPath"),
			DumpInterval: viper.GetDuration("storage.sqlite.dumpInterval"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("storage.postgres.host"),
			Port:     viper.GetString("storage.postgres.port"),
			Username: viper.GetString("storage.postgres.username"),
			Password: viper.GetString("storage.postgres.password"),
			Database: viper.GetString("storage.postgres.database"),
		},
	}
}

// GetInfluxConfig returns the InfluxDB settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:   viper.GetBool("influx.enabled"),
		Host:      viper.GetString("influx.host"),
		Port:      viper.GetString("influx.port"),
		Protocol:  viper.GetString("influx.protocol"),
		Token:     viper.GetString("influx.token"),
		Org:       viper.GetString("influx.org"),
		Bucket:    viper.GetString("influx.bucket"),
		BackupDir: viper.GetString("influx.backupDir"),
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:     viper.GetBool("otel.enabled"),
		ServiceName: viper.GetString("otel.serviceName"),
		Endpoint:    viper.GetString("otel.endpoint"),
		Insecure:    viper.GetBool("otel.insecure"),
		Interval:    viper.GetDuration("otel.interval"),
	}
}

// GetAPIConfig returns the upload settings.
func GetAPIConfig() APIConfig {
	return APIConfig{
		Enabled:   viper.GetBool("api.enabled"),
		ServerURL: viper.GetString("api.serverUrl"),
		APIKey:    viper.GetString("api.apiKey"),
	}
}

// GetGraylogConfig returns the GELF settings.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}
