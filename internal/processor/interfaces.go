package processor

import (
	"context"

	"resume-iq-go/internal/types"
)

//
// 分析流水线消费的能力接口。实现方持有各自的模型句柄，
// 接口层面只进出内存值对象。
//

// EntityExtractor 实体提取能力
type EntityExtractor interface {
	// Extract 提取实体、联系方式与工作经历，内部降级，永不失败
	Extract(ctx context.Context, text string) *types.ExtractionResult
}

// SkillsMatcher 技能提取与比对能力
type SkillsMatcher interface {
	// ExtractSkills 从文本中提取技能集合
	ExtractSkills(text string) types.SkillSet

	// MatchSkills 计算简历技能与要求技能的比对结果
	MatchSkills(resumeSkills, requiredSkills []string) types.SkillMatch
}

// ExperienceClassifier 经验推断能力
type ExperienceClassifier interface {
	// Classify 推断年限、级别、职位标题与置信度
	Classify(text string) types.ExperienceEstimate
}

// SimilarityScorer 语义相似度能力
type SimilarityScorer interface {
	// Similarity 两段文本的余弦相似度，失败返回0.0
	Similarity(ctx context.Context, textA, textB string) float64

	// SectionScores 简历各章节与岗位描述的相似度
	SectionScores(ctx context.Context, resumeText, jobText string) map[string]float64

	// RankCandidates 按整体语义相似度排序一批简历
	RankCandidates(ctx context.Context, jobText string, resumes []types.ResumeInput) []types.RankedMatch
}

// Components 聚合分析流水线的全部组件依赖，便于集中管理和测试替换
type Components struct {
	Entities   EntityExtractor
	Skills     SkillsMatcher
	Experience ExperienceClassifier
	Similarity SimilarityScorer
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	SimilarityWeight float64 // 整体相似度在岗位匹配中的权重
	SkillWeight      float64 // 技能匹配权重
	SectionWeight    float64 // 最佳章节相似度权重
}

// DefaultSettings 返回默认打分权重
func DefaultSettings() Settings {
	return Settings{
		SimilarityWeight: 0.4,
		SkillWeight:      0.4,
		SectionWeight:    0.2,
	}
}
