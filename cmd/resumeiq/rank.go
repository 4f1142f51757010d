package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"resume-iq-go/internal/parser"
	"resume-iq-go/internal/processor"
	"resume-iq-go/internal/types"
)

var (
	rankJobFile    string
	rankSkillsFlag []string
)

var rankCmd = &cobra.Command{
	Use:   "rank --job <jd.txt> <resume files...>",
	Short: "对一批简历按与岗位描述的匹配度排序",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(rankJobFile)
		if err != nil {
			return fmt.Errorf("读取岗位描述失败: %w", err)
		}
		jobDescription := string(data)

		skillsMatcher := parser.NewSkillsMatcher()

		// 未显式给出要求技能时，从岗位描述自身提取
		requiredSkills := rankSkillsFlag
		if len(requiredSkills) == 0 {
			jobSkills := skillsMatcher.ExtractSkills(jobDescription)
			requiredSkills = jobSkills.All()
		}

		resumes := make([]types.ResumeInput, 0, len(args))
		for _, path := range args {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("读取简历文件 %s 失败: %w", path, err)
			}
			resumes = append(resumes, types.ResumeInput{
				ID:   uuid.NewString(),
				Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
				Text: string(content),
			})
		}

		components := buildComponents(cfg)
		ranker := processor.NewJobMatchRanker(components.Similarity, components.Skills, analyzerSettings(cfg)...)

		ranked, err := ranker.MatchAll(cmd.Context(), jobDescription, requiredSkills, resumes)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(ranked)
	},
}

func init() {
	rankCmd.Flags().StringVarP(&rankJobFile, "job", "j", "", "岗位描述文件")
	rankCmd.Flags().StringSliceVar(&rankSkillsFlag, "skills", nil, "要求技能列表，逗号分隔；缺省时从岗位描述提取")
	_ = rankCmd.MarkFlagRequired("job")
}
