package parser

import (
	"regexp"
	"strings"

	"resume-iq-go/internal/constants"
	"resume-iq-go/internal/types"
	"resume-iq-go/internal/utils"
)

// 自由文本技能挖掘模式
var (
	// "proficient/experienced/... in/with <大写开头词>"
	proficiencyPattern = regexp.MustCompile(`\b(?:proficient|experienced|skilled|knowledge|familiar)\s+(?:in|with)\s+([A-Z][a-zA-Z+#]+)`)
	// "tech stack: a, b; c"
	techStackPattern = regexp.MustCompile(`(?i)(?:tech|technology)\s+stack[:\s]+([^.]+)`)
	// 以已知后缀结尾的驼峰技术名，如 MongoDB/GraphQL风格的 <Xxx>JS/.js/DB/SQL/API/SDK/UI/ML/AI/NLP
	knownSuffixPattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:JS|\.js|DB|SQL|API|SDK|UI|ML|AI|NLP))\b`)
	// 归一化时保留+和#，避免拆散C++/C#这类token
	punctuationPattern = regexp.MustCompile(`[^\w\s+#]`)
	// tech stack列表分隔符
	stackDelimiterPattern = regexp.MustCompile(`[,;]`)
)

// skillPattern 单个目录条目及其整词匹配正则
type skillPattern struct {
	name    string
	pattern *regexp.Regexp
}

// SkillsMatcher 基于目录与模式的技能提取与比对器。
// 目录模式在构造时编译一次，之后只读，可跨goroutine共享。
type SkillsMatcher struct {
	technical []skillPattern
	soft      []skillPattern
}

// NewSkillsMatcher 创建技能匹配器，编译全部目录模式
func NewSkillsMatcher() *SkillsMatcher {
	return &SkillsMatcher{
		technical: compileCatalog(constants.TechnicalSkills),
		soft:      compileCatalog(constants.SoftSkills),
	}
}

func compileCatalog(catalog []string) []skillPattern {
	patterns := make([]skillPattern, 0, len(catalog))
	for _, skill := range catalog {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(skill)) + `\b`)
		patterns = append(patterns, skillPattern{name: skill, pattern: re})
	}
	return patterns
}

// ExtractSkills 从文本中提取技术技能与软技能。
// 结果保持首次出现顺序，大小写不敏感去重，技术技能最多20个，软技能最多10个。
func (m *SkillsMatcher) ExtractSkills(text string) types.SkillSet {
	lower := strings.ToLower(text)
	cleaned := punctuationPattern.ReplaceAllString(lower, " ")

	var technical []string
	for _, sp := range m.technical {
		if sp.pattern.MatchString(cleaned) {
			technical = append(technical, sp.name)
		}
	}

	var soft []string
	for _, sp := range m.soft {
		if sp.pattern.MatchString(cleaned) {
			soft = append(soft, sp.name)
		}
	}

	technical = append(technical, mineTechnicalSkills(text)...)

	technical = dedupeCaseInsensitive(technical)
	soft = dedupeCaseInsensitive(soft)

	if len(technical) > constants.MaxTechnicalSkills {
		technical = technical[:constants.MaxTechnicalSkills]
	}
	if len(soft) > constants.MaxSoftSkills {
		soft = soft[:constants.MaxSoftSkills]
	}

	return types.SkillSet{Technical: technical, Soft: soft}
}

// mineTechnicalSkills 在原始文本上做模式挖掘，补充目录之外的技术技能
func mineTechnicalSkills(text string) []string {
	var mined []string

	for _, match := range proficiencyPattern.FindAllStringSubmatch(text, -1) {
		mined = append(mined, match[1])
	}

	for _, match := range techStackPattern.FindAllStringSubmatch(text, -1) {
		for _, tech := range stackDelimiterPattern.Split(match[1], -1) {
			if trimmed := strings.TrimSpace(tech); trimmed != "" {
				mined = append(mined, trimmed)
			}
		}
	}

	for _, match := range knownSuffixPattern.FindAllStringSubmatch(text, -1) {
		mined = append(mined, match[1])
	}

	// 过滤常见误报
	filtered := mined[:0]
	for _, skill := range mined {
		if !constants.MinedSkillStopWords[skill] {
			filtered = append(filtered, skill)
		}
	}

	return filtered
}

// MatchSkills 计算简历技能与岗位要求技能的交集与差集。
// 比较大小写不敏感，matchScore = |交集|/|要求集|，要求集为空时得分为0。
func (m *SkillsMatcher) MatchSkills(resumeSkills, requiredSkills []string) types.SkillMatch {
	resumeSet := make(map[string]bool, len(resumeSkills))
	for _, skill := range resumeSkills {
		resumeSet[strings.ToLower(skill)] = true
	}

	required := dedupeCaseInsensitive(requiredSkills)

	var matched, missing []string
	for _, skill := range required {
		if resumeSet[strings.ToLower(skill)] {
			matched = append(matched, strings.ToLower(skill))
		} else {
			missing = append(missing, strings.ToLower(skill))
		}
	}

	score := 0.0
	if len(required) > 0 {
		score = utils.Round2(float64(len(matched)) / float64(len(required)))
	}

	return types.SkillMatch{
		Matched:       matched,
		Missing:       missing,
		MatchScore:    score,
		MatchedCount:  len(matched),
		RequiredCount: len(required),
	}
}

// dedupeCaseInsensitive 保持首次出现顺序的大小写不敏感去重
func dedupeCaseInsensitive(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		lower := strings.ToLower(item)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, item)
	}
	return out
}
