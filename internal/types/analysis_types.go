package types

import (
	"strings"
	"time"
)

// 分析结果状态
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// 经验等级枚举值
const (
	LevelEntry        = "Entry Level"
	LevelMid          = "Mid-Level"
	LevelSenior       = "Senior"
	LevelExecutive    = "Executive"
	LevelNotSpecified = "Not Specified"
)

// ContactInfo 联系方式。所有字段可缺省，每个字段只保留原文中的首个匹配。
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// EntityBundle 按语义类型分桶的命名实体集合，各桶内部已去重
type EntityBundle struct {
	Persons       []string `json:"persons"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
	Dates         []string `json:"dates"`
	Misc          []string `json:"misc"`
}

// PrimaryPerson 返回第一个人名实体，没有则返回空字符串
func (b *EntityBundle) PrimaryPerson() string {
	if len(b.Persons) > 0 {
		return b.Persons[0]
	}
	return ""
}

// WorkHistoryEntry 一条工作经历：职位行及其邻近关联到的公司和时间段
type WorkHistoryEntry struct {
	Position string `json:"position"`
	Company  string `json:"company,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// SkillSet 从文本中提取到的技能集合，保持首次出现顺序
type SkillSet struct {
	Technical []string `json:"technical_skills"`
	Soft      []string `json:"soft_skills"`
}

// All 返回技术技能与软技能的拼接
func (s *SkillSet) All() []string {
	all := make([]string, 0, len(s.Technical)+len(s.Soft))
	all = append(all, s.Technical...)
	all = append(all, s.Soft...)
	return all
}

// SkillMatch 简历技能与岗位要求技能的比对结果
type SkillMatch struct {
	Matched       []string `json:"matched_skills"`
	Missing       []string `json:"missing_skills"`
	MatchScore    float64  `json:"match_score"`
	MatchedCount  int      `json:"matched_count"`
	RequiredCount int      `json:"required_count"`
}

// ExperienceEstimate 经验年限与级别的推断结果
type ExperienceEstimate struct {
	Years      *float64 `json:"experience_years,omitempty"`
	Level      string   `json:"experience_level"`
	JobTitles  []string `json:"job_titles"`
	Confidence float64  `json:"confidence"`
}

// ExtractionResult 实体提取的聚合输出
type ExtractionResult struct {
	Entities      EntityBundle       `json:"entities"`
	Contact       ContactInfo        `json:"contact_info"`
	WorkHistory   []WorkHistoryEntry `json:"work_history"`
	PrimaryPerson string             `json:"candidate_name,omitempty"`
}

// JobMatchResult 简历与单个岗位描述的匹配结果
type JobMatchResult struct {
	OverallScore    float64            `json:"overall_score"`
	SimilarityScore float64            `json:"similarity_score"`
	SkillMatch      SkillMatch         `json:"skills_match"`
	SectionScores   map[string]float64 `json:"section_scores"`
	// 为调用方展开的便捷字段，与SkillMatch内容一致
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// AnalysisResult 一次完整简历分析的聚合结果。
// Status为failed时除Error外所有打分字段均缺省。
type AnalysisResult struct {
	CandidateName   string             `json:"candidate_name,omitempty"`
	ContactInfo     ContactInfo        `json:"contact_info"`
	WorkHistory     []WorkHistoryEntry `json:"work_history"`
	Entities        EntityBundle       `json:"entities"`
	TechnicalSkills []string           `json:"technical_skills"`
	SoftSkills      []string           `json:"soft_skills"`
	AllSkills       []string           `json:"all_skills"`
	ExperienceYears *float64           `json:"experience_years,omitempty"`
	ExperienceLevel string             `json:"experience_level,omitempty"`
	JobTitles       []string           `json:"job_titles"`
	Confidence      float64            `json:"confidence,omitempty"`
	ATSScore        int                `json:"ats_score"`
	JobMatch        *JobMatchResult    `json:"job_match,omitempty"`
	Recommendations []string           `json:"recommendations"`
	AnalyzedAt      time.Time          `json:"analyzed_at,omitempty"`
	Status          string             `json:"status"`
	Error           string             `json:"error,omitempty"`
}

// ResumeInput 批量匹配的单份简历输入
type ResumeInput struct {
	ID   string `json:"id"`
	Name string `json:"candidate_name,omitempty"`
	Text string `json:"text"`
}

// RankedMatch 批量匹配中单份简历的打分条目
type RankedMatch struct {
	ResumeID        string     `json:"resume_id"`
	CandidateName   string     `json:"candidate_name,omitempty"`
	OverallScore    float64    `json:"overall_score"`
	SimilarityScore float64    `json:"similarity_score"`
	SkillMatch      SkillMatch `json:"skills_match"`
}

// Line 文档中的一行及其在原文中的字节偏移
type Line struct {
	Text   string
	Offset int
}

// Document 不可变纯文本及其行索引视图，供基于位置邻近的启发式规则使用
type Document struct {
	Text  string
	Lines []Line
}

// NewDocument 构建文档的行索引视图
func NewDocument(text string) *Document {
	doc := &Document{Text: text}
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		doc.Lines = append(doc.Lines, Line{Text: line, Offset: offset})
		offset += len(line) + 1
	}
	return doc
}

// Window 返回以[start, end)行范围为中心、前后各扩展margin字节的原文片段
func (d *Document) Window(line Line, margin int) string {
	start := line.Offset - margin
	if start < 0 {
		start = 0
	}
	end := line.Offset + len(line.Text) + margin
	if end > len(d.Text) {
		end = len(d.Text)
	}
	return d.Text[start:end]
}
