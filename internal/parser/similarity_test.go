package parser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-iq-go/internal/types"
)

// embedFunc 函数式Embedder桩，按输入文本路由向量
type embedFunc func(ctx context.Context, texts []string) ([][]float64, error)

func (f embedFunc) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	return f(ctx, texts)
}

// routeVectors 按子串命中返回固定向量，未命中返回零向量
func routeVectors(routes map[string][]float64, dims int) embedFunc {
	return func(_ context.Context, texts []string) ([][]float64, error) {
		out := make([][]float64, 0, len(texts))
		for _, text := range texts {
			vector := make([]float64, dims)
			for key, v := range routes {
				if strings.Contains(text, key) {
					vector = v
					break
				}
			}
			out = append(out, vector)
		}
		return out, nil
	}
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float64{1, 2, 3}, []float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-9)

	// 维度不一致或零范数按0.0兜底
	assert.Zero(t, CosineSimilarity([]float64{1, 0}, []float64{1, 0, 0}))
	assert.Zero(t, CosineSimilarity([]float64{0, 0}, []float64{1, 0}))
	assert.Zero(t, CosineSimilarity(nil, []float64{1}))
}

func TestSimilarityEngine_Similarity(t *testing.T) {
	engine := NewSimilarityEngine(routeVectors(map[string][]float64{
		"golang resume": {1, 0},
		"golang job":    {1, 0},
	}, 2))

	score := engine.Similarity(context.Background(), "golang resume", "golang job")
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestSimilarityEngine_Similarity_EmbedFailureYieldsZero(t *testing.T) {
	engine := NewSimilarityEngine(embedFunc(func(context.Context, []string) ([][]float64, error) {
		return nil, errors.New("provider unavailable")
	}))

	assert.Zero(t, engine.Similarity(context.Background(), "a", "b"))
}

func TestSimilarityEngine_LazyInitRunsFactoryOnce(t *testing.T) {
	factoryCalls := 0
	engine := NewLazySimilarityEngine(func() (TextEmbedder, error) {
		factoryCalls++
		return routeVectors(nil, 2), nil
	})

	engine.Similarity(context.Background(), "a", "b")
	engine.Similarity(context.Background(), "a", "b")

	assert.Equal(t, 1, factoryCalls)
}

func TestSimilarityEngine_LazyInitFailureIsCached(t *testing.T) {
	factoryCalls := 0
	engine := NewLazySimilarityEngine(func() (TextEmbedder, error) {
		factoryCalls++
		return nil, errors.New("missing api key")
	})

	assert.Zero(t, engine.Similarity(context.Background(), "a", "b"))
	assert.Zero(t, engine.Similarity(context.Background(), "a", "b"))
	assert.Equal(t, 1, factoryCalls)
}

func TestSplitSections(t *testing.T) {
	resume := "Skills\nGo, Python\n\nEducation\nBS Computer Science\n"

	sections := SplitSections(resume)

	assert.Contains(t, sections["skills"], "Go, Python")
	assert.Contains(t, sections["education"], "BS Computer Science")
	assert.Empty(t, sections["experience"])
	assert.Empty(t, sections["summary"])
	assert.Empty(t, sections["projects"])
}

func TestSplitSections_NoHeaders(t *testing.T) {
	sections := SplitSections("just a plain paragraph without any headings")

	for name, content := range sections {
		assert.Empty(t, content, "章节 %s 应为空", name)
	}
}

func TestSimilarityEngine_SectionScores(t *testing.T) {
	engine := NewSimilarityEngine(routeVectors(map[string][]float64{
		"backend role": {1, 0},
		"Go, Python":   {1, 0},
		"BS Computer":  {0, 1},
	}, 2))

	resume := "Skills\nGo, Python\n\nEducation\nBS Computer Science\n"
	scores := engine.SectionScores(context.Background(), resume, "backend role")

	require.Len(t, scores, 2)
	assert.InDelta(t, 1.0, scores["skills"], 1e-9)
	assert.InDelta(t, 0.0, scores["education"], 1e-9)
}

func TestSimilarityEngine_SectionScores_UnavailableEmbedder(t *testing.T) {
	engine := NewLazySimilarityEngine(func() (TextEmbedder, error) {
		return nil, errors.New("missing api key")
	})

	scores := engine.SectionScores(context.Background(), "Skills\nGo\n", "backend role")
	assert.Empty(t, scores)
}

func TestSimilarityEngine_RankCandidates(t *testing.T) {
	engine := NewSimilarityEngine(routeVectors(map[string][]float64{
		"backend role": {1, 0},
		"alpha":        {1, 0},
		"beta":         {1, 1},
		"gamma":        {0, 1},
	}, 2))

	resumes := []types.ResumeInput{
		{ID: "r3", Name: "Carol", Text: "gamma"},
		{ID: "r1", Name: "Alice", Text: "alpha"},
		{ID: "r0", Name: "Blank", Text: "   \n"}, // 空文本跳过，不计0分
		{ID: "r2", Name: "Bob", Text: "beta"},
	}
	ranked := engine.RankCandidates(context.Background(), "backend role", resumes)

	require.Len(t, ranked, 3)
	assert.Equal(t, "r1", ranked[0].ResumeID)
	assert.Equal(t, "r2", ranked[1].ResumeID)
	assert.Equal(t, "r3", ranked[2].ResumeID)

	assert.InDelta(t, 1.0, ranked[0].SimilarityScore, 1e-9)
	assert.InDelta(t, 0.71, ranked[1].SimilarityScore, 1e-9)
	assert.Zero(t, ranked[2].SimilarityScore)
}
