package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"resume-iq-go/internal/processor"
	"resume-iq-go/internal/types"
)

var analyzeJobFile string

// 并发分析的上限，与外部服务限流协同
const maxConcurrentAnalyses = 4

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume.txt> [more resumes...]",
	Short: "分析一份或多份简历文本，输出结构化结果JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobDescription := ""
		if analyzeJobFile != "" {
			data, err := os.ReadFile(analyzeJobFile)
			if err != nil {
				return fmt.Errorf("读取岗位描述失败: %w", err)
			}
			jobDescription = string(data)
		}

		analyzer := processor.NewResumeAnalyzer(buildComponents(cfg), analyzerSettings(cfg)...)

		results := make([]*types.AnalysisResult, len(args))
		group, ctx := errgroup.WithContext(cmd.Context())
		group.SetLimit(maxConcurrentAnalyses)

		for i, path := range args {
			group.Go(func() error {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("读取简历文件 %s 失败: %w", path, err)
				}
				results[i] = analyzer.Analyze(ctx, string(data), jobDescription)
				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return err
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if len(results) == 1 {
			return encoder.Encode(results[0])
		}
		return encoder.Encode(results)
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job", "j", "", "岗位描述文件，提供后附带岗位匹配结果")
}
