package processor

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"resume-iq-go/internal/logger"
	"resume-iq-go/internal/types"
	"resume-iq-go/internal/utils"
)

// ATS打分的分值表
const (
	atsMaxScore          = 100
	atsEmailPoints       = 10
	atsPhonePoints       = 10
	atsSkillsPoints      = 20
	atsWorkHistoryPoints = 20
	atsYearsPoints       = 10
	atsFormattingPoints  = 15
	atsKeywordPointsCap  = 15
	atsKeywordUnitPoints = 3
)

// 文本长度在此区间内视为ATS友好
const (
	atsMinTextLength = 500
	atsMaxTextLength = 10000
)

// ATSScorer 确定性的加分制ATS兼容性打分器，输出恒在[0,100]
type ATSScorer struct {
	log zerolog.Logger
}

// NewATSScorer 创建ATS打分器
func NewATSScorer() *ATSScorer {
	return &ATSScorer{
		log: logger.Logger.With().Str("component", "ats_scorer").Logger(),
	}
}

// Score 对已有分析结果加原始文本计算ATS兼容性得分
func (s *ATSScorer) Score(result *types.AnalysisResult, rawText string) int {
	score := 0

	if result.ContactInfo.Email != "" {
		score += atsEmailPoints
	}
	if result.ContactInfo.Phone != "" {
		score += atsPhonePoints
	}
	if len(result.TechnicalSkills) > 0 {
		score += atsSkillsPoints
	}
	if len(result.WorkHistory) > 0 {
		score += atsWorkHistoryPoints
	}
	if result.ExperienceYears != nil {
		score += atsYearsPoints
	}
	if s.hasGoodFormatting(rawText) {
		score += atsFormattingPoints
	}

	keywordScore := len(result.AllSkills) * atsKeywordUnitPoints
	if keywordScore > atsKeywordPointsCap {
		keywordScore = atsKeywordPointsCap
	}
	score += keywordScore

	return utils.ClampInt(score, 0, atsMaxScore)
}

// hasGoodFormatting 格式体检：存在常见章节关键词且文本长度在合理区间。
// 项目符号信号单独计算并记录，但不参与最终判定。
func (s *ATSScorer) hasGoodFormatting(text string) bool {
	lower := strings.ToLower(text)

	hasSections := false
	for _, keyword := range []string{"experience", "education", "skills", "summary"} {
		if strings.Contains(lower, keyword) {
			hasSections = true
			break
		}
	}

	head := text
	if len(head) > 1000 {
		head = head[:1000]
	}
	hasBullets := strings.Contains(text, "•") || strings.Contains(head, "-")

	// 长度按字符计而非字节，多字节简历不受编码宽度影响
	length := utf8.RuneCountInString(text)
	reasonableLength := length > atsMinTextLength && length < atsMaxTextLength

	s.log.Debug().
		Bool("has_sections", hasSections).
		Bool("has_bullets", hasBullets).
		Bool("reasonable_length", reasonableLength).
		Msg("格式体检信号")

	return hasSections && reasonableLength
}
