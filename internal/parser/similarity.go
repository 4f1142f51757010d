package parser

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"resume-iq-go/internal/logger"
	"resume-iq-go/internal/types"
	"resume-iq-go/internal/utils"
)

// sectionPattern 简历章节标题模式，按固定优先级扫描
type sectionPattern struct {
	name    string
	pattern *regexp.Regexp
}

var sectionPatterns = []sectionPattern{
	{"experience", regexp.MustCompile(`(?:work\s+)?experience|employment|career|professional\s+background`)},
	{"education", regexp.MustCompile(`education|academic|qualification|degree`)},
	{"skills", regexp.MustCompile(`skills|technical\s+skills|competencies|technologies`)},
	{"summary", regexp.MustCompile(`summary|objective|profile|about`)},
	{"projects", regexp.MustCompile(`projects|portfolio|accomplishments`)},
}

// SimilarityEngine 语义相似度引擎，封装外部Embedding能力。
// Embedding句柄首次使用时惰性初始化，单次初始化结果被所有并发调用复用。
type SimilarityEngine struct {
	embedder TextEmbedder
	factory  func() (TextEmbedder, error)
	initOnce sync.Once
	initErr  error
	log      zerolog.Logger
}

// NewSimilarityEngine 基于已构建的Embedder创建相似度引擎
func NewSimilarityEngine(embedder TextEmbedder) *SimilarityEngine {
	return &SimilarityEngine{
		embedder: embedder,
		log:      logger.Logger.With().Str("component", "similarity_engine").Logger(),
	}
}

// NewLazySimilarityEngine 创建惰性初始化的相似度引擎。
// factory在首次使用时执行一次，成功或失败的结果都会被缓存。
func NewLazySimilarityEngine(factory func() (TextEmbedder, error)) *SimilarityEngine {
	return &SimilarityEngine{
		factory: factory,
		log:     logger.Logger.With().Str("component", "similarity_engine").Logger(),
	}
}

// getEmbedder 单胜者初始化守卫，惰性装载Embedding句柄。
// 并发首用时只有一个goroutine执行factory，其余复用同一结果。
func (s *SimilarityEngine) getEmbedder() (TextEmbedder, error) {
	if s.factory != nil {
		s.initOnce.Do(func() {
			embedder, err := s.factory()
			if err != nil {
				s.initErr = fmt.Errorf("初始化Embedder失败: %w", err)
				return
			}
			s.embedder = embedder
			s.log.Debug().Msg("Embedding句柄初始化完成")
		})
		if s.initErr != nil {
			return nil, s.initErr
		}
	}

	if s.embedder == nil {
		return nil, fmt.Errorf("embedding能力未配置")
	}
	return s.embedder, nil
}

// Similarity 计算两段文本的余弦相似度。
// Embedding失败时返回0.0并记录日志，调用方不会收到错误。
func (s *SimilarityEngine) Similarity(ctx context.Context, textA, textB string) float64 {
	embedder, err := s.getEmbedder()
	if err != nil {
		s.log.Warn().Err(err).Msg("Embedder不可用，相似度按0.0处理")
		return 0.0
	}

	vectors, err := embedder.EmbedStrings(ctx, []string{textA, textB})
	if err != nil || len(vectors) < 2 {
		s.log.Warn().Err(err).Msg("计算相似度失败，按0.0处理")
		return 0.0
	}

	return CosineSimilarity(vectors[0], vectors[1])
}

// SectionScores 将简历切分为命名章节后，逐章节计算与岗位描述的相似度。
// 无法识别任何章节标题时返回空映射；单个章节Embedding失败记0.0。
func (s *SimilarityEngine) SectionScores(ctx context.Context, resumeText, jobText string) map[string]float64 {
	scores := make(map[string]float64)

	sections := SplitSections(resumeText)

	embedder, err := s.getEmbedder()
	if err != nil {
		s.log.Warn().Err(err).Msg("Embedder不可用，跳过章节相似度计算")
		return scores
	}

	jobVectors, err := embedder.EmbedStrings(ctx, []string{jobText})
	if err != nil || len(jobVectors) == 0 {
		s.log.Warn().Err(err).Msg("岗位描述Embedding失败，跳过章节相似度计算")
		return scores
	}
	jobVector := jobVectors[0]

	// 遍历固定顺序，保证行为可复现
	for _, sp := range sectionPatterns {
		content := sections[sp.name]
		if content == "" {
			continue
		}

		sectionVectors, err := embedder.EmbedStrings(ctx, []string{content})
		if err != nil || len(sectionVectors) == 0 {
			s.log.Warn().Err(err).Str("section", sp.name).Msg("章节Embedding失败，记0.0")
			scores[sp.name] = 0.0
			continue
		}
		scores[sp.name] = CosineSimilarity(jobVector, sectionVectors[0])
	}

	return scores
}

// RankCandidates 对一批简历按与岗位描述的语义相似度排序。
// 岗位文本只嵌入一次；空文本的简历直接跳过；
// 单份简历失败记0.0并继续，不中断整批。
func (s *SimilarityEngine) RankCandidates(ctx context.Context, jobText string, resumes []types.ResumeInput) []types.RankedMatch {
	results := make([]types.RankedMatch, 0, len(resumes))

	embedder, err := s.getEmbedder()
	if err != nil {
		s.log.Warn().Err(err).Msg("Embedder不可用，候选人排序按全0分处理")
	}

	var jobVector []float64
	if embedder != nil {
		jobVectors, embedErr := embedder.EmbedStrings(ctx, []string{jobText})
		if embedErr != nil || len(jobVectors) == 0 {
			s.log.Warn().Err(embedErr).Msg("岗位描述Embedding失败，候选人排序按全0分处理")
		} else {
			jobVector = jobVectors[0]
		}
	}

	for _, resume := range resumes {
		if strings.TrimSpace(resume.Text) == "" {
			s.log.Debug().Str("resume_id", resume.ID).Msg("简历文本为空，跳过")
			continue
		}

		score := 0.0
		if jobVector != nil {
			resumeVectors, embedErr := embedder.EmbedStrings(ctx, []string{resume.Text})
			if embedErr != nil || len(resumeVectors) == 0 {
				s.log.Warn().Err(embedErr).Str("resume_id", resume.ID).Msg("简历Embedding失败，相似度记0.0")
			} else {
				score = CosineSimilarity(jobVector, resumeVectors[0])
			}
		}

		results = append(results, types.RankedMatch{
			ResumeID:        resume.ID,
			CandidateName:   resume.Name,
			OverallScore:    utils.Round2(score),
			SimilarityScore: utils.Round2(score),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})

	return results
}

// SplitSections 按章节标题把简历切分为 experience/education/skills/summary/projects 五段。
// 标题识别逐行进行：命中后的行累积到最近命中的章节，直到下一个标题；
// 未识别出任何标题时五段均为空。
func SplitSections(text string) map[string]string {
	sections := map[string]string{
		"experience": "",
		"education":  "",
		"skills":     "",
		"summary":    "",
		"projects":   "",
	}

	current := ""
	for _, line := range strings.Split(text, "\n") {
		lineLower := strings.ToLower(strings.TrimSpace(line))

		for _, sp := range sectionPatterns {
			if sp.pattern.MatchString(lineLower) {
				current = sp.name
				break
			}
		}

		if current != "" {
			sections[current] += line + "\n"
		}
	}

	return sections
}

// CosineSimilarity 余弦相似度 dot(u,v)/(‖u‖·‖v‖)。
// 任一向量范数为零时返回0.0，这是兜底值而非正交信号。
func CosineSimilarity(u, v []float64) float64 {
	if len(u) == 0 || len(v) == 0 || len(u) != len(v) {
		return 0.0
	}

	var dot, normU, normV float64
	for i := range u {
		dot += u[i] * v[i]
		normU += u[i] * u[i]
		normV += v[i] * v[i]
	}

	if normU == 0 || normV == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normU) * math.Sqrt(normV))
}
