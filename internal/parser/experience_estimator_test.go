package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-iq-go/internal/types"
)

// 固定时钟，"present/current"与"since"的推断不依赖真实时间
func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
}

func TestExperienceEstimator_Classify_ExplicitYears(t *testing.T) {
	estimator := NewExperienceEstimator()

	result := estimator.Classify("7 years of experience building backend systems")

	require.NotNil(t, result.Years)
	assert.InDelta(t, 7.0, *result.Years, 1e-9)
	assert.Equal(t, types.LevelSenior, result.Level)
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
}

func TestExperienceEstimator_Classify_SingleYearRange(t *testing.T) {
	estimator := NewExperienceEstimator()

	result := estimator.Classify("Acme Corp, 2018 - 2023")

	require.NotNil(t, result.Years)
	assert.InDelta(t, 4.0, *result.Years, 1e-9)
	assert.Equal(t, types.LevelMid, result.Level)
}

func TestExperienceEstimator_Classify_RangeWithPresent(t *testing.T) {
	estimator := NewExperienceEstimator(WithClock(fixedClock(2026)))

	result := estimator.Classify("Acme Corp, 2020 - Present")

	require.NotNil(t, result.Years)
	assert.InDelta(t, 5.0, *result.Years, 1e-9)
}

func TestExperienceEstimator_Classify_SumsMultipleRanges(t *testing.T) {
	estimator := NewExperienceEstimator()

	result := estimator.Classify("Acme Corp, 2015 - 2018\nGlobex, 2019 - 2022")

	require.NotNil(t, result.Years)
	assert.InDelta(t, 4.0, *result.Years, 1e-9)
}

func TestExperienceEstimator_Classify_ZeroWidthRangeYieldsNoYears(t *testing.T) {
	estimator := NewExperienceEstimator()

	result := estimator.Classify("Acme Corp, 2020 - 2020")

	assert.Nil(t, result.Years)
	assert.Equal(t, types.LevelNotSpecified, result.Level)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
}

func TestExperienceEstimator_Classify_DiscardsNoiseRangeAndFallsBackToSince(t *testing.T) {
	estimator := NewExperienceEstimator(WithClock(fixedClock(2026)))

	// 跨度超过50年的区间视为噪声，退回since策略
	result := estimator.Classify("Archive 1800 - 1900\nProgramming professionally since 2019")

	require.NotNil(t, result.Years)
	assert.InDelta(t, 7.0, *result.Years, 1e-9)
}

func TestExperienceEstimator_Classify_KeywordBeatsYears(t *testing.T) {
	estimator := NewExperienceEstimator()

	// "principal"关键词优先于按年限分级（12年本应是Executive）
	result := estimator.Classify("Principal Engineer with 12 years of experience")

	require.NotNil(t, result.Years)
	assert.InDelta(t, 12.0, *result.Years, 1e-9)
	assert.Equal(t, types.LevelSenior, result.Level)
	assert.Equal(t, []string{"Principal Engineer with 12 years of experience"}, result.JobTitles)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
}

func TestExperienceEstimator_Classify_LevelTableOrder(t *testing.T) {
	estimator := NewExperienceEstimator()

	// 级别表按entry→mid→senior→executive顺序求值，先命中者生效
	result := estimator.Classify("Junior developer, previously senior intern")
	assert.Equal(t, types.LevelEntry, result.Level)

	result = estimator.Classify("Head of Platform Infrastructure")
	assert.Equal(t, types.LevelExecutive, result.Level)
}

func TestExperienceEstimator_Classify_JobTitles(t *testing.T) {
	estimator := NewExperienceEstimator()

	text := "Software Engineer\n" +
		"Data Analyst\n" +
		"Product Manager\n" +
		"Solutions Architect\n" +
		"UX Designer\n" +
		"Technical Consultant\n"
	result := estimator.Classify(text)

	// 最多保留5条职位行
	assert.Len(t, result.JobTitles, 5)
	assert.Equal(t, "Software Engineer", result.JobTitles[0])
	assert.NotContains(t, result.JobTitles, "Technical Consultant")
}

func TestExperienceEstimator_Classify_TitleLineLengthCountsCharacters(t *testing.T) {
	estimator := NewExperienceEstimator()

	// 49个字符但129字节的行：行长按字符判定，不应被跳过
	line := strings.Repeat("云", 40) + " engineer"
	result := estimator.Classify(line)

	assert.Equal(t, []string{line}, result.JobTitles)
}

func TestExperienceEstimator_Classify_SkipsLongLines(t *testing.T) {
	estimator := NewExperienceEstimator()

	long := "engineer " + strings.Repeat("responsible for many initiatives ", 4)
	require.GreaterOrEqual(t, len(long), 100)

	result := estimator.Classify(long)

	assert.Empty(t, result.JobTitles)
}
