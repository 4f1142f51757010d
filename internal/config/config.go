package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// 环境变量覆盖项，优先级高于配置文件
const (
	EnvNERAPIKey       = "RESUMEIQ_NER_API_KEY"
	EnvEmbeddingAPIKey = "RESUMEIQ_EMBEDDING_API_KEY"
)

// NERConfig 命名实体识别服务配置
type NERConfig struct {
	BaseURL        string `yaml:"base_url"`        // token-classification 服务地址
	Model          string `yaml:"model"`           // 模型名称
	APIKey         string `yaml:"api_key"`         // 可被环境变量覆盖
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 请求超时(秒)
	QPM            int    `yaml:"qpm"`             // 每分钟请求数限制，0表示不限
}

// EmbeddingConfig Embedding服务配置 (OpenAI兼容端点)
type EmbeddingConfig struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	Dimensions     int    `yaml:"dimensions"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	QPM            int    `yaml:"qpm"`
}

// AnalyzerConfig 分析器打分权重配置
type AnalyzerConfig struct {
	SimilarityWeight float64 `yaml:"similarity_weight"` // 整体语义相似度权重
	SkillWeight      float64 `yaml:"skill_weight"`      // 技能匹配权重
	SectionWeight    float64 `yaml:"section_weight"`    // 最佳章节相似度权重
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"` // json 或 pretty
	TimeFormat   string `yaml:"time_format"`
	ReportCaller bool   `yaml:"report_caller"`
}

// Config 应用程序配置
type Config struct {
	NER       NERConfig       `yaml:"ner"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Analyzer  AnalyzerConfig  `yaml:"analyzer"`
	Logger    LoggerConfig    `yaml:"logger"`
}

// Default 返回内置默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.NER.Model == "" {
		c.NER.Model = "dbmdz/bert-large-cased-finetuned-conll03-english"
	}
	if c.NER.TimeoutSeconds == 0 {
		c.NER.TimeoutSeconds = 30
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.Dimensions == 0 {
		c.Embedding.Dimensions = 1024
	}
	if c.Embedding.BaseURL == "" {
		c.Embedding.BaseURL = "https://api.openai.com/v1/embeddings"
	}
	if c.Embedding.TimeoutSeconds == 0 {
		c.Embedding.TimeoutSeconds = 30
	}
	if c.Analyzer.SimilarityWeight == 0 && c.Analyzer.SkillWeight == 0 && c.Analyzer.SectionWeight == 0 {
		c.Analyzer.SimilarityWeight = 0.4
		c.Analyzer.SkillWeight = 0.4
		c.Analyzer.SectionWeight = 0.2
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "json"
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvNERAPIKey); v != "" {
		c.NER.APIKey = v
	}
	if v := os.Getenv(EnvEmbeddingAPIKey); v != "" {
		c.Embedding.APIKey = v
	}
}

// LoadConfig 加载配置文件。
// 未指定路径时在常见位置查找，找不到则回退到内置默认配置。
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resumeiq", "config.yaml"),
		}

		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths, filepath.Join(execDir, "config.yaml"))
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		// 没有配置文件也可以运行：NER与Embedding走降级路径
		if configPath == "" {
			cfg := Default()
			cfg.applyEnvOverrides()
			return cfg, nil
		}
	}

	return LoadConfigFromFileOnly(configPath)
}

// LoadConfigFromFileOnly 从指定文件加载配置，文件必须存在
func LoadConfigFromFileOnly(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("必须提供配置文件路径")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return cfg, nil
}
