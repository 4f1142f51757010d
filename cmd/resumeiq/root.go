package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"resume-iq-go/internal/config"
	"resume-iq-go/internal/logger"
	"resume-iq-go/internal/parser"
	"resume-iq-go/internal/processor"
)

const app = "resumeiq"

var (
	cfgFile   string
	logLevel  string
	logPretty bool

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "resumeiq 对简历文本做结构化分析，并计算与岗位描述的匹配分",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("加载配置失败: %w", err)
			}

			if logLevel != "" {
				cfg.Logger.Level = logLevel
			}
			if logPretty {
				cfg.Logger.Format = "pretty"
			}
			logger.Init(logger.Config{
				Level:        cfg.Logger.Level,
				Format:       cfg.Logger.Format,
				TimeFormat:   cfg.Logger.TimeFormat,
				ReportCaller: cfg.Logger.ReportCaller,
			})
			return nil
		},
	}
)

// Execute 执行根命令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	bindRootFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(rankCmd)
}

func bindRootFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&cfgFile, "config", "c", "", "配置文件路径（默认在常见位置查找）")
	fs.StringVar(&logLevel, "log-level", "", "日志级别，覆盖配置文件")
	fs.BoolVar(&logPretty, "pretty", false, "控制台友好的日志输出")
}

// buildComponents 按配置组装分析流水线组件。
// NER/Embedding未配置或构建失败时记录警告并走各组件的降级路径。
func buildComponents(cfg *config.Config) processor.Components {
	var tagger parser.EntityTagger
	if cfg.NER.BaseURL != "" {
		t, err := parser.NewHTTPEntityTagger(cfg.NER.APIKey, cfg.NER)
		if err != nil {
			logger.Warn().Err(err).Msg("NER客户端创建失败，实体提取将走降级路径")
		} else {
			tagger = t
		}
	}

	embeddingCfg := cfg.Embedding
	engine := parser.NewLazySimilarityEngine(func() (parser.TextEmbedder, error) {
		return parser.NewOpenAIEmbedder(embeddingCfg.APIKey, embeddingCfg)
	})

	components := processor.Components{}
	for _, opt := range []processor.ComponentOpt{
		processor.WithEntityExtractor(parser.NewEntityExtractor(tagger)),
		processor.WithSkillsMatcher(parser.NewSkillsMatcher()),
		processor.WithExperienceClassifier(parser.NewExperienceEstimator()),
		processor.WithSimilarityScorer(engine),
	} {
		opt(&components)
	}
	return components
}

// analyzerSettings 将配置中的权重映射为设置选项
func analyzerSettings(cfg *config.Config) []processor.SettingOpt {
	return []processor.SettingOpt{
		processor.WithSimilarityWeight(cfg.Analyzer.SimilarityWeight),
		processor.WithSkillWeight(cfg.Analyzer.SkillWeight),
		processor.WithSectionWeight(cfg.Analyzer.SectionWeight),
	}
}
