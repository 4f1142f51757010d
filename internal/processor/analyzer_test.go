package processor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-iq-go/internal/parser"
	"resume-iq-go/internal/types"
	"resume-iq-go/internal/utils"
)

//
// 流水线组件的测试替身，与接口一一对应
//

type fakeEntities struct {
	extraction *types.ExtractionResult
	panicMsg   string
}

func (f *fakeEntities) Extract(_ context.Context, _ string) *types.ExtractionResult {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.extraction
}

type fakeSkills struct {
	byText map[string]types.SkillSet
	match  types.SkillMatch
}

func (f *fakeSkills) ExtractSkills(text string) types.SkillSet {
	return f.byText[text]
}

func (f *fakeSkills) MatchSkills(_, _ []string) types.SkillMatch {
	return f.match
}

type fakeExperience struct {
	estimate types.ExperienceEstimate
}

func (f *fakeExperience) Classify(_ string) types.ExperienceEstimate {
	return f.estimate
}

type fakeSimilarity struct {
	similarity float64
	byText     map[string]float64
	sections   map[string]float64
}

func (f *fakeSimilarity) Similarity(_ context.Context, textA, _ string) float64 {
	if f.byText != nil {
		return f.byText[textA]
	}
	return f.similarity
}

func (f *fakeSimilarity) SectionScores(_ context.Context, _, _ string) map[string]float64 {
	return f.sections
}

func (f *fakeSimilarity) RankCandidates(_ context.Context, _ string, _ []types.ResumeInput) []types.RankedMatch {
	return nil
}

func TestResumeAnalyzer_Analyze_FullPipeline(t *testing.T) {
	resumeText := "Work Experience\n" + strings.Repeat("Shipped and operated Go services. ", 20)
	jobText := "Backend role requiring Go and Python"

	components := Components{
		Entities: &fakeEntities{extraction: &types.ExtractionResult{
			PrimaryPerson: "Jane Roe",
			Contact: types.ContactInfo{
				Email:    "jane@example.com",
				Phone:    "+1 555 123 4567",
				LinkedIn: "linkedin.com/in/janeroe",
			},
			WorkHistory: []types.WorkHistoryEntry{
				{Position: "Senior Engineer", Company: "Acme", Duration: "2019 - 2023"},
				{Position: "Engineer", Company: "Globex", Duration: "2016 - 2019"},
			},
			Entities: types.EntityBundle{Persons: []string{"Jane Roe"}},
		}},
		Skills: &fakeSkills{
			byText: map[string]types.SkillSet{
				resumeText: {
					Technical: []string{"Go", "Python", "Docker", "Kubernetes", "AWS"},
					Soft:      []string{"Leadership"},
				},
				jobText: {Technical: []string{"Go", "Python"}},
			},
			match: types.SkillMatch{
				Matched:       []string{"go", "python"},
				MatchScore:    1.0,
				MatchedCount:  2,
				RequiredCount: 2,
			},
		},
		Experience: &fakeExperience{estimate: types.ExperienceEstimate{
			Years:      utils.Float64Ptr(6),
			Level:      types.LevelSenior,
			JobTitles:  []string{"Senior Engineer"},
			Confidence: 1.0,
		}},
		Similarity: &fakeSimilarity{
			similarity: 0.8,
			sections:   map[string]float64{"skills": 0.9, "education": 0.5},
		},
	}

	analyzer := NewResumeAnalyzer(components)
	result := analyzer.Analyze(context.Background(), resumeText, jobText)

	assert.Equal(t, types.StatusCompleted, result.Status)
	assert.Empty(t, result.Error)
	assert.False(t, result.AnalyzedAt.IsZero())

	assert.Equal(t, "Jane Roe", result.CandidateName)
	assert.Equal(t, "jane@example.com", result.ContactInfo.Email)
	assert.Len(t, result.WorkHistory, 2)
	assert.Len(t, result.AllSkills, 6)
	assert.Equal(t, types.LevelSenior, result.ExperienceLevel)

	// 全部ATS信号齐备
	assert.Equal(t, 100, result.ATSScore)
	assert.Empty(t, result.Recommendations)

	// overall = 0.8*0.4 + 1.0*0.4 + 0.9*0.2
	require.NotNil(t, result.JobMatch)
	assert.InDelta(t, 0.9, result.JobMatch.OverallScore, 1e-9)
	assert.InDelta(t, 0.8, result.JobMatch.SimilarityScore, 1e-9)
	assert.Equal(t, []string{"go", "python"}, result.JobMatch.MatchedSkills)
	assert.Empty(t, result.JobMatch.MissingSkills)
}

// cannedTagger 固定标注结果的NER替身
type cannedTagger struct {
	entities []parser.TaggedEntity
}

func (c *cannedTagger) Tag(_ context.Context, _ string) ([]parser.TaggedEntity, error) {
	return c.entities, nil
}

func TestResumeAnalyzer_Analyze_WithRealExtractors(t *testing.T) {
	resumeText := "Jane Smith\n" +
		"jane.smith@example.com\n" +
		"+1 (555) 987-6543\n\n" +
		"Senior Software Engineer\n" +
		"Initech, 2019 - 2023\n\n" +
		"Work Experience\n" +
		strings.Repeat("Built resilient data pipelines with Python and Docker on PostgreSQL clusters.\n", 7)

	tagger := &cannedTagger{entities: []parser.TaggedEntity{
		{Word: "Jane Smith", Label: "PER"},
		{Word: "Initech", Label: "ORG"},
		{Word: "2019 - 2023", Label: "DATE"},
	}}
	components := Components{
		Entities:   parser.NewEntityExtractor(tagger),
		Skills:     parser.NewSkillsMatcher(),
		Experience: parser.NewExperienceEstimator(),
		Similarity: &fakeSimilarity{},
	}

	analyzer := NewResumeAnalyzer(components)
	result := analyzer.Analyze(context.Background(), resumeText, "")

	assert.Equal(t, types.StatusCompleted, result.Status)
	assert.Equal(t, "Jane Smith", result.CandidateName)
	assert.Equal(t, "jane.smith@example.com", result.ContactInfo.Email)
	assert.Equal(t, "+1 (555) 987-6543", result.ContactInfo.Phone)

	assert.Equal(t, []string{"Python", "PostgreSQL", "Docker"}, result.TechnicalSkills)

	require.Len(t, result.WorkHistory, 1)
	assert.Equal(t, "Senior Software Engineer", result.WorkHistory[0].Position)
	assert.Equal(t, "Initech", result.WorkHistory[0].Company)
	assert.Equal(t, "2019 - 2023", result.WorkHistory[0].Duration)

	require.NotNil(t, result.ExperienceYears)
	assert.InDelta(t, 3.0, *result.ExperienceYears, 1e-9)
	assert.Equal(t, types.LevelSenior, result.ExperienceLevel)

	// email10 + phone10 + skills20 + history20 + years10 + formatting15 + keyword9
	assert.Equal(t, 94, result.ATSScore)
	assert.GreaterOrEqual(t, result.ATSScore, 70)

	// 缺LinkedIn、技能少于5个、经历少于2条
	assert.Len(t, result.Recommendations, 3)
}

func TestResumeAnalyzer_Analyze_EmptyText(t *testing.T) {
	analyzer := NewResumeAnalyzer(Components{})

	result := analyzer.Analyze(context.Background(), "   \n\t", "")

	assert.Equal(t, types.StatusFailed, result.Status)
	assert.Equal(t, "resume text is empty", result.Error)
	assert.Zero(t, result.ATSScore)
	assert.Nil(t, result.JobMatch)
}

func TestResumeAnalyzer_Analyze_RecoversFromPanic(t *testing.T) {
	components := Components{
		Entities:   &fakeEntities{panicMsg: "boom"},
		Skills:     &fakeSkills{},
		Experience: &fakeExperience{},
		Similarity: &fakeSimilarity{},
	}
	analyzer := NewResumeAnalyzer(components)

	var result *types.AnalysisResult
	assert.NotPanics(t, func() {
		result = analyzer.Analyze(context.Background(), "some resume text", "")
	})

	require.NotNil(t, result)
	assert.Equal(t, types.StatusFailed, result.Status)
	assert.Contains(t, result.Error, "boom")
	// 失败结果不携带半成品字段
	assert.Empty(t, result.CandidateName)
	assert.Zero(t, result.ATSScore)
}

func TestResumeAnalyzer_Analyze_NoJobDescription(t *testing.T) {
	components := Components{
		Entities:   &fakeEntities{extraction: &types.ExtractionResult{}},
		Skills:     &fakeSkills{},
		Experience: &fakeExperience{estimate: types.ExperienceEstimate{Level: types.LevelNotSpecified}},
		Similarity: &fakeSimilarity{},
	}
	analyzer := NewResumeAnalyzer(components)

	result := analyzer.Analyze(context.Background(), "minimal resume", "")

	assert.Equal(t, types.StatusCompleted, result.Status)
	assert.Nil(t, result.JobMatch)
}

func TestResumeAnalyzer_Analyze_RecommendationsForSparseResume(t *testing.T) {
	components := Components{
		Entities:   &fakeEntities{extraction: &types.ExtractionResult{}},
		Skills:     &fakeSkills{},
		Experience: &fakeExperience{estimate: types.ExperienceEstimate{Level: types.LevelNotSpecified}},
		Similarity: &fakeSimilarity{},
	}
	analyzer := NewResumeAnalyzer(components)

	result := analyzer.Analyze(context.Background(), "minimal resume", "")

	// 规则全部适用，输出顺序即规则定义顺序
	assert.Equal(t, []string{
		"Consider improving ATS compatibility by adding more keywords",
		"Add email address for contact information",
		"Include phone number for easier contact",
		"Add LinkedIn profile URL",
		"Include more technical skills relevant to your field",
		"Clearly mention total years of experience",
		"Provide more detailed work history with company names and dates",
	}, result.Recommendations)
}

func TestResumeAnalyzer_Analyze_CustomWeights(t *testing.T) {
	resumeText := "resume body"
	jobText := "job body"

	components := Components{
		Entities:   &fakeEntities{extraction: &types.ExtractionResult{}},
		Skills:     &fakeSkills{match: types.SkillMatch{MatchScore: 1.0}},
		Experience: &fakeExperience{estimate: types.ExperienceEstimate{Level: types.LevelNotSpecified}},
		Similarity: &fakeSimilarity{similarity: 0.5},
	}
	analyzer := NewResumeAnalyzer(components,
		WithSimilarityWeight(1.0),
		WithSkillWeight(0),
		WithSectionWeight(0),
	)

	result := analyzer.Analyze(context.Background(), resumeText, jobText)

	require.NotNil(t, result.JobMatch)
	assert.InDelta(t, 0.5, result.JobMatch.OverallScore, 1e-9)
}
