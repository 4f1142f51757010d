package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"resume-iq-go/internal/constants"
	"resume-iq-go/internal/types"
	"resume-iq-go/internal/utils"
)

// 年限提取的正则，按声明顺序尝试，先命中者生效
var (
	explicitYearsPattern = regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of\s*)?experience`)
	yearRangePattern     = regexp.MustCompile(`(?i)(\d{4})\s*[-–]\s*(\d{4}|present|current)`)
	sincePattern         = regexp.MustCompile(`(?i)since\s*(\d{4})`)
)

// 单个年份区间的合理跨度上限，用于拦截OCR噪声
const maxRangeSpanYears = 50

// ExperienceEstimator 基于规则的经验年限与级别推断器
type ExperienceEstimator struct {
	now func() time.Time // 可注入时钟，"present/current"以此为准
}

// EstimatorOption 推断器配置选项
type EstimatorOption func(*ExperienceEstimator)

// WithClock 设置推断器使用的时钟
func WithClock(now func() time.Time) EstimatorOption {
	return func(e *ExperienceEstimator) {
		e.now = now
	}
}

// NewExperienceEstimator 创建经验推断器
func NewExperienceEstimator(options ...EstimatorOption) *ExperienceEstimator {
	estimator := &ExperienceEstimator{now: time.Now}
	for _, opt := range options {
		opt(estimator)
	}
	return estimator
}

// Classify 推断文本中的经验年限、级别、职位标题与置信度
func (e *ExperienceEstimator) Classify(text string) types.ExperienceEstimate {
	lower := strings.ToLower(text)

	years := e.extractYears(text)

	level := classifyByKeywords(lower)
	if level == "" && years != nil {
		level = classifyByYears(*years)
	}
	if level == "" {
		level = types.LevelNotSpecified
	}

	titles := extractJobTitles(text)

	return types.ExperienceEstimate{
		Years:      years,
		Level:      level,
		JobTitles:  titles,
		Confidence: calculateConfidence(level, years, titles),
	}
}

// extractYears 按顺序尝试三种策略提取总年限，均未命中返回nil
func (e *ExperienceEstimator) extractYears(text string) *float64 {
	// 策略1：显式 "N years of experience"
	if match := explicitYearsPattern.FindStringSubmatch(text); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil {
			return utils.Float64Ptr(float64(n))
		}
	}

	currentYear := e.now().Year()

	// 策略2：累加所有年份区间。区间年差按尾年不计入统计，
	// 即 "2018 - 2023" 计 4 年；单区间跨度超出[0,50]的视为噪声丢弃。
	// 重叠的任职区间不做去重，按原样累加。
	totalYears := 0
	for _, match := range yearRangePattern.FindAllStringSubmatch(text, -1) {
		startYear, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		endYear := currentYear
		endToken := strings.ToLower(match[2])
		if endToken != "present" && endToken != "current" {
			endYear, err = strconv.Atoi(match[2])
			if err != nil {
				continue
			}
		}

		diff := endYear - startYear
		if diff < 0 || diff > maxRangeSpanYears {
			continue
		}
		if diff > 0 {
			totalYears += diff - 1
		}
	}
	if totalYears > 0 {
		return utils.Float64Ptr(float64(totalYears))
	}

	// 策略3："since YYYY"
	if match := sincePattern.FindStringSubmatch(text); match != nil {
		if startYear, err := strconv.Atoi(match[1]); err == nil {
			return utils.Float64Ptr(float64(currentYear - startYear))
		}
	}

	return nil
}

// classifyByKeywords 按级别表固定顺序检查关键词，首个命中的级别生效。
// 未命中返回空字符串。
func classifyByKeywords(lower string) string {
	for _, entry := range constants.ExperienceLevelKeywords {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				return entry.Level
			}
		}
	}
	return ""
}

// classifyByYears 按年限区间分级
func classifyByYears(years float64) string {
	switch {
	case years < 2:
		return types.LevelEntry
	case years < 5:
		return types.LevelMid
	case years < 10:
		return types.LevelSenior
	default:
		return types.LevelExecutive
	}
}

// extractJobTitles 收集含职位关键词且长度小于100字符的行，最多5条。
// 行长按字符计而非字节，多字节文本不受编码宽度影响。
func extractJobTitles(text string) []string {
	var titles []string

	for _, line := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(line) >= 100 {
			continue
		}
		lineLower := strings.ToLower(strings.TrimSpace(line))

		for _, keyword := range constants.JobTitleKeywords {
			if strings.Contains(lineLower, keyword) {
				titles = append(titles, strings.TrimSpace(line))
				break
			}
		}
		if len(titles) >= constants.MaxJobTitles {
			break
		}
	}

	return titles
}

// calculateConfidence 置信度：基准0.5，级别与年限各+0.2，职位标题每条+0.1（最多3条），上限1.0
func calculateConfidence(level string, years *float64, titles []string) float64 {
	confidence := 0.5

	if level != "" && level != types.LevelNotSpecified {
		confidence += 0.2
	}
	if years != nil {
		confidence += 0.2
	}

	titleCount := len(titles)
	if titleCount > 3 {
		titleCount = 3
	}
	confidence += 0.1 * float64(titleCount)

	return utils.ClampFloat64(confidence, 0, 1.0)
}
