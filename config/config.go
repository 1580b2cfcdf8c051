package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	LLM     LLMConfig     `mapstructure:"llm"`
	Ollama  OllamaConfig  `mapstructure:"ollama"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Tts     TtsConfig     `mapstructure:"tts"`
	Voice   VoiceConfig   `mapstructure:"voice"`
	Storage StorageConfig `mapstructure:"storage"`
	Server  ServerConfig  `mapstructure:"server"`
}

// LLM provider selection
type LLMConfig struct {
	Provider string `mapstructure:"provider"` // "ollama" or "openai"
}

type OllamaConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// URL returns the base address of the Ollama server.
func (c *OllamaConfig) URL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`   // Optional, defaults to OpenAI API
	MaxTokens int    `mapstructure:"max_tokens"` // Optional, defaults to model's max
	Timeout   int    `mapstructure:"timeout"`
}

type TtsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Engine       string `mapstructure:"engine"` // "google", "system" or "dummy"
	Voice        string `mapstructure:"voice"`  // cloud voice name, e.g. "en-US-Chirp-HD-F"
	LanguageCode string `mapstructure:"language_code"`
	SampleRate   int    `mapstructure:"sample_rate"`
	Credentials  string `mapstructure:"credentials"` // service account json path
}

type VoiceConfig struct {
	SamplesDir string `mapstructure:"samples_dir"`
	SampleFile string `mapstructure:"sample_file"` // preferred local sample
	Bucket     string `mapstructure:"bucket"`      // GCS bucket holding the recorded sample
	BucketPath string `mapstructure:"bucket_path"` // object path inside the bucket
}

type StorageConfig struct {
	MemoriesPath   string `mapstructure:"memories_path"`
	DatabasePath   string `mapstructure:"database_path"`
	ChatHistoryDir string `mapstructure:"chat_history_dir"`
	PersonaFile    string `mapstructure:"persona_file"`
}

type ServerConfig struct {
	Addr          string `mapstructure:"addr"`
	SessionSecret string `mapstructure:"session_secret"`
	PasswordHash  string `mapstructure:"password_hash"` // bcrypt hash for the web login
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable contract kept compatible with the original
	// shell setup scripts
	viper.BindEnv("ollama.host", "OLLAMA_HOST")
	viper.BindEnv("ollama.port", "OLLAMA_PORT")
	viper.BindEnv("ollama.model", "MODEL")
	viper.BindEnv("llm.provider", "LLM_PROVIDER")
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("tts.enabled", "USE_TTS")
	viper.BindEnv("tts.credentials", "GOOGLE_APPLICATION_CREDENTIALS")
	viper.BindEnv("voice.bucket", "GCS_BUCKET_NAME")
	viper.BindEnv("voice.bucket_path", "GCS_VOICE_SAMPLE_PATH")
	viper.BindEnv("voice.sample_file", "VOICE_SAMPLE_FILE")
	viper.BindEnv("storage.persona_file", "PERSONA_FILE")

	viper.SetDefault("llm.provider", "ollama")

	viper.SetDefault("ollama.host", "localhost")
	viper.SetDefault("ollama.port", 11434)
	viper.SetDefault("ollama.model", "llama3.1:8b")
	viper.SetDefault("ollama.timeout", 120)

	viper.SetDefault("openai.timeout", 30)
	viper.SetDefault("openai.max_tokens", 1000)

	viper.SetDefault("tts.enabled", true)
	viper.SetDefault("tts.engine", "google")
	viper.SetDefault("tts.voice", "en-US-Chirp-HD-F")
	viper.SetDefault("tts.language_code", "en-US")
	viper.SetDefault("tts.sample_rate", 22050)

	viper.SetDefault("voice.samples_dir", "voice_samples")

	viper.SetDefault("storage.memories_path", "storage/memories.json")
	viper.SetDefault("storage.database_path", "maitre.db")
	viper.SetDefault("storage.chat_history_dir", "chat_history")
	viper.SetDefault("storage.persona_file", "persona/astronaut.json")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.session_secret", "change-this-in-production")

	// Allow environment variables
	viper.SetEnvPrefix("MAITRE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found, use defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
