package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resume-iq-go/internal/logger"
	"resume-iq-go/internal/tracing"
	"resume-iq-go/internal/types"
	"resume-iq-go/internal/utils"
)

const analyzerTracerName = "resume-iq-go/internal/processor"

// 推荐规则阈值
const (
	recommendATSThreshold   = 70
	recommendMinTechSkills  = 5
	recommendMinWorkHistory = 2
)

// ResumeAnalyzer 简历分析编排器。
// 按固定阶段顺序驱动各组件：实体提取 → 技能提取 → 经验推断 → ATS打分 →
// [岗位匹配] → 建议生成。任一阶段的未捕获错误使整次分析进入failed，
// 已算出的部分结果一并丢弃，调用方永远拿到完整结果或失败标记。
type ResumeAnalyzer struct {
	components Components
	scorer     *ATSScorer
	settings   Settings
	tracer     trace.Tracer
	log        zerolog.Logger
}

// NewResumeAnalyzer 创建简历分析器
func NewResumeAnalyzer(components Components, opts ...SettingOpt) *ResumeAnalyzer {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	return &ResumeAnalyzer{
		components: components,
		scorer:     NewATSScorer(),
		settings:   settings,
		tracer:     otel.Tracer(analyzerTracerName),
		log:        logger.Logger.With().Str("component", "resume_analyzer").Logger(),
	}
}

// Analyze 对一份简历执行完整分析，jobDescription非空时附带岗位匹配。
// 该方法不panic也不返回error：所有失败以Status=failed表达。
func (a *ResumeAnalyzer) Analyze(ctx context.Context, resumeText, jobDescription string) (result *types.AnalysisResult) {
	ctx, span := a.tracer.Start(ctx, "resume_analyzer.analyze")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("分析过程异常: %v", r)
			tracing.RecordError(span, err, tracing.ErrorTypeInternal)
			a.log.Error().Err(err).Msg("简历分析异常终止")
			result = failedResult(err.Error())
		}
	}()

	if strings.TrimSpace(resumeText) == "" {
		err := fmt.Errorf("resume text is empty")
		tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeValidation,
			attribute.Int("resume.length", len(resumeText)))
		return failedResult(err.Error())
	}

	span.SetAttributes(
		attribute.Int("resume.length", len(resumeText)),
		attribute.Bool("resume.with_job_description", jobDescription != ""),
		attribute.String("resume.preview", tracing.SafeResumeContent(resumeText)),
	)

	result = &types.AnalysisResult{}

	// 1. 实体提取
	a.runStage(ctx, "extract_entities", func(ctx context.Context) {
		extraction := a.components.Entities.Extract(ctx, resumeText)
		result.CandidateName = extraction.PrimaryPerson
		result.ContactInfo = extraction.Contact
		result.WorkHistory = extraction.WorkHistory
		result.Entities = extraction.Entities
	})

	// 2. 技能提取
	a.runStage(ctx, "extract_skills", func(ctx context.Context) {
		skills := a.components.Skills.ExtractSkills(resumeText)
		result.TechnicalSkills = skills.Technical
		result.SoftSkills = skills.Soft
		result.AllSkills = skills.All()
	})

	// 3. 经验推断
	a.runStage(ctx, "classify_experience", func(ctx context.Context) {
		estimate := a.components.Experience.Classify(resumeText)
		result.ExperienceYears = estimate.Years
		result.ExperienceLevel = estimate.Level
		result.JobTitles = estimate.JobTitles
		result.Confidence = estimate.Confidence
	})

	// 4. ATS打分
	a.runStage(ctx, "ats_score", func(ctx context.Context) {
		result.ATSScore = a.scorer.Score(result, resumeText)
	})

	// 5. 岗位匹配（可选）
	if jobDescription != "" {
		a.runStage(ctx, "job_match", func(ctx context.Context) {
			result.JobMatch = a.calculateJobMatch(ctx, resumeText, jobDescription, result.AllSkills)
		})
	}

	// 6. 建议生成
	a.runStage(ctx, "recommendations", func(ctx context.Context) {
		result.Recommendations = a.generateRecommendations(result)
	})

	result.AnalyzedAt = time.Now().UTC()
	result.Status = types.StatusCompleted

	// 候选人姓名属于PII，进span属性前掩码
	span.SetAttributes(
		attribute.String("resume.candidate", tracing.SafeAttributeValue("candidate_name", result.CandidateName, tracing.DefaultMaxLength)),
		attribute.Int("resume.ats_score", result.ATSScore),
	)

	a.log.Info().
		Str("candidate", tracing.MaskPII(result.CandidateName)).
		Int("ats_score", result.ATSScore).
		Int("technical_skills", len(result.TechnicalSkills)).
		Msg("简历分析完成")

	return result
}

// runStage 以独立span执行一个分析阶段
func (a *ResumeAnalyzer) runStage(ctx context.Context, name string, fn func(ctx context.Context)) {
	ctx, span := a.tracer.Start(ctx, "resume_analyzer."+name)
	defer span.End()

	start := time.Now()
	fn(ctx)
	a.log.Debug().Str("stage", name).Dur("elapsed", time.Since(start)).Msg("分析阶段完成")
}

// calculateJobMatch 计算单份简历与岗位描述的匹配结果。
// 要求技能取岗位描述自身提取出的全部技能。
func (a *ResumeAnalyzer) calculateJobMatch(ctx context.Context, resumeText, jobDescription string, resumeSkills []string) *types.JobMatchResult {
	similarity := a.components.Similarity.Similarity(ctx, resumeText, jobDescription)

	jobSkills := a.components.Skills.ExtractSkills(jobDescription)
	skillMatch := a.components.Skills.MatchSkills(resumeSkills, jobSkills.All())

	sectionScores := a.components.Similarity.SectionScores(ctx, resumeText, jobDescription)
	maxSection := 0.0
	for _, score := range sectionScores {
		if score > maxSection {
			maxSection = score
		}
	}

	overall := similarity*a.settings.SimilarityWeight +
		skillMatch.MatchScore*a.settings.SkillWeight +
		maxSection*a.settings.SectionWeight
	overall = utils.ClampFloat64(utils.Round2(overall), 0, 1)

	return &types.JobMatchResult{
		OverallScore:    overall,
		SimilarityScore: utils.Round2(similarity),
		SkillMatch:      skillMatch,
		SectionScores:   sectionScores,
		MatchedSkills:   skillMatch.Matched,
		MissingSkills:   skillMatch.Missing,
	}
}

// generateRecommendations 按固定规则表生成改进建议。
// 规则彼此独立，所有适用的规则都会触发，输出顺序即规则定义顺序。
func (a *ResumeAnalyzer) generateRecommendations(result *types.AnalysisResult) []string {
	var recommendations []string

	if result.ATSScore < recommendATSThreshold {
		recommendations = append(recommendations, "Consider improving ATS compatibility by adding more keywords")
	}
	if result.ContactInfo.Email == "" {
		recommendations = append(recommendations, "Add email address for contact information")
	}
	if result.ContactInfo.Phone == "" {
		recommendations = append(recommendations, "Include phone number for easier contact")
	}
	if result.ContactInfo.LinkedIn == "" {
		recommendations = append(recommendations, "Add LinkedIn profile URL")
	}
	if len(result.TechnicalSkills) < recommendMinTechSkills {
		recommendations = append(recommendations, "Include more technical skills relevant to your field")
	}
	if result.ExperienceYears == nil {
		recommendations = append(recommendations, "Clearly mention total years of experience")
	}
	if len(result.WorkHistory) < recommendMinWorkHistory {
		recommendations = append(recommendations, "Provide more detailed work history with company names and dates")
	}

	return recommendations
}

// failedResult 构造失败标记结果，不携带任何部分算出的字段
func failedResult(message string) *types.AnalysisResult {
	return &types.AnalysisResult{
		Status: types.StatusFailed,
		Error:  message,
	}
}
