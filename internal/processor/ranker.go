package processor

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"resume-iq-go/internal/logger"
	"resume-iq-go/internal/types"
	"resume-iq-go/internal/utils"
)

// JobMatchRanker 批量岗位匹配排序器：一个岗位描述对N份简历打分并稳定排序。
// 每份简历的打分彼此独立，批次可在简历之间被取消，已算出的条目保持可用。
type JobMatchRanker struct {
	similarity SimilarityScorer
	skills     SkillsMatcher
	settings   Settings
	log        zerolog.Logger
}

// NewJobMatchRanker 创建批量匹配排序器
func NewJobMatchRanker(similarity SimilarityScorer, skills SkillsMatcher, opts ...SettingOpt) *JobMatchRanker {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	return &JobMatchRanker{
		similarity: similarity,
		skills:     skills,
		settings:   settings,
		log:        logger.Logger.With().Str("component", "job_match_ranker").Logger(),
	}
}

// MatchAll 对一批简历计算与岗位描述的匹配分并按总分降序返回。
// 空文本的简历直接跳过（不计0分）；同分条目保持输入顺序。
// 上下文在简历之间被取消时返回已完成的条目和取消错误。
func (r *JobMatchRanker) MatchAll(ctx context.Context, jobDescription string, requiredSkills []string, resumes []types.ResumeInput) ([]types.RankedMatch, error) {
	results := make([]types.RankedMatch, 0, len(resumes))

	for _, resume := range resumes {
		select {
		case <-ctx.Done():
			r.log.Warn().Int("scored", len(results)).Msg("批量匹配被取消，返回已完成条目")
			sortRanked(results)
			return results, ctx.Err()
		default:
		}

		if strings.TrimSpace(resume.Text) == "" {
			r.log.Debug().Str("resume_id", resume.ID).Msg("简历文本为空，跳过")
			continue
		}

		results = append(results, r.scoreOne(ctx, jobDescription, requiredSkills, resume))
	}

	sortRanked(results)
	return results, nil
}

// scoreOne 计算单份简历的加权匹配分
func (r *JobMatchRanker) scoreOne(ctx context.Context, jobDescription string, requiredSkills []string, resume types.ResumeInput) types.RankedMatch {
	similarity := r.similarity.Similarity(ctx, resume.Text, jobDescription)

	resumeSkills := r.skills.ExtractSkills(resume.Text)
	skillMatch := r.skills.MatchSkills(resumeSkills.All(), requiredSkills)

	sectionScores := r.similarity.SectionScores(ctx, resume.Text, jobDescription)
	maxSection := 0.0
	for _, score := range sectionScores {
		if score > maxSection {
			maxSection = score
		}
	}

	overall := similarity*r.settings.SimilarityWeight +
		skillMatch.MatchScore*r.settings.SkillWeight +
		maxSection*r.settings.SectionWeight
	overall = utils.ClampFloat64(utils.Round2(overall), 0, 1)

	return types.RankedMatch{
		ResumeID:        resume.ID,
		CandidateName:   resume.Name,
		OverallScore:    overall,
		SimilarityScore: utils.Round2(similarity),
		SkillMatch:      skillMatch,
	}
}

// sortRanked 按总分降序稳定排序，同分保持输入顺序
func sortRanked(results []types.RankedMatch) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
}
