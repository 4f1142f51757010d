package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"resume-iq-go/internal/constants"
	"resume-iq-go/internal/logger"
	"resume-iq-go/internal/types"
)

// 联系方式提取的正则，进程级编译一次
var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern    = regexp.MustCompile(`\+?\(?[0-9]{1,4}\)?[-\s.]?\(?[0-9]{1,4}\)?[-\s.]?[0-9]{1,5}[-\s.]?[0-9]{1,5}`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
)

// 底层tokenizer的子词重建碎片以此前缀标记，分桶前必须丢弃
const subwordPrefix = "##"

// EntityExtractor 从简历文本中提取命名实体、联系方式与工作经历。
// NER能力不可用时整体降级为正则提取，降级路径永不失败。
type EntityExtractor struct {
	tagger EntityTagger // 可为nil，nil时直接走降级路径
	log    zerolog.Logger
}

// NewEntityExtractor 创建实体提取器
func NewEntityExtractor(tagger EntityTagger) *EntityExtractor {
	return &EntityExtractor{
		tagger: tagger,
		log:    logger.Logger.With().Str("component", "entity_extractor").Logger(),
	}
}

// Extract 提取文本中的全部实体信息。该方法不返回错误：
// NER失败时回落到正则提取与首行人名推断。
func (e *EntityExtractor) Extract(ctx context.Context, text string) *types.ExtractionResult {
	if e.tagger == nil {
		return e.fallbackExtraction(text)
	}

	tagged, err := e.tagger.Tag(ctx, text)
	if err != nil {
		e.log.Warn().Err(err).Msg("NER服务调用失败，使用正则降级提取")
		return e.fallbackExtraction(text)
	}

	bundle := bucketEntities(tagged)
	result := &types.ExtractionResult{
		Entities:      bundle,
		Contact:       extractContactInfo(text),
		WorkHistory:   extractWorkHistory(text, &bundle),
		PrimaryPerson: bundle.PrimaryPerson(),
	}
	return result
}

// bucketEntities 按标签把实体分入五个互斥的桶，桶内大小写不敏感去重
func bucketEntities(tagged []TaggedEntity) types.EntityBundle {
	bundle := types.EntityBundle{}
	seen := map[string]map[string]bool{
		"PER": {}, "ORG": {}, "LOC": {}, "DATE": {}, "MISC": {},
	}

	appendUnique := func(bucket *[]string, key, word string) {
		lower := strings.ToLower(word)
		if seen[key][lower] {
			return
		}
		seen[key][lower] = true
		*bucket = append(*bucket, word)
	}

	for _, entity := range tagged {
		word := strings.TrimSpace(entity.Word)
		if word == "" || strings.HasPrefix(word, subwordPrefix) {
			continue
		}

		switch entity.Label {
		case "PER":
			appendUnique(&bundle.Persons, "PER", word)
		case "ORG":
			appendUnique(&bundle.Organizations, "ORG", word)
		case "LOC":
			appendUnique(&bundle.Locations, "LOC", word)
		case "DATE":
			appendUnique(&bundle.Dates, "DATE", word)
		default:
			appendUnique(&bundle.Misc, "MISC", word)
		}
	}

	return bundle
}

// extractContactInfo 正则提取联系方式，每个字段只保留首个匹配
func extractContactInfo(text string) types.ContactInfo {
	contact := types.ContactInfo{}

	if email := emailPattern.FindString(text); email != "" {
		contact.Email = email
	}
	if phone := phonePattern.FindString(text); phone != "" {
		contact.Phone = phone
	}
	if linkedin := linkedinPattern.FindString(text); linkedin != "" {
		contact.LinkedIn = linkedin
	}
	if github := githubPattern.FindString(text); github != "" {
		contact.GitHub = github
	}

	return contact
}

// extractWorkHistory 扫描职位关键词行，在±100字节窗口内就近关联公司与时间段。
// 只保留至少关联到公司或时间段之一的条目，按文中出现顺序最多5条。
func extractWorkHistory(text string, entities *types.EntityBundle) []types.WorkHistoryEntry {
	var history []types.WorkHistoryEntry
	doc := types.NewDocument(text)

	for _, line := range doc.Lines {
		lineLower := strings.ToLower(line.Text)

		for _, keyword := range constants.WorkHistoryTitleKeywords {
			if !strings.Contains(lineLower, keyword) {
				continue
			}

			entry := types.WorkHistoryEntry{Position: strings.TrimSpace(line.Text)}
			window := doc.Window(line, constants.WorkHistoryWindow)
			windowLower := strings.ToLower(window)

			for _, company := range entities.Organizations {
				if strings.Contains(windowLower, strings.ToLower(company)) {
					entry.Company = company
					break
				}
			}
			for _, date := range entities.Dates {
				if strings.Contains(window, date) {
					entry.Duration = date
					break
				}
			}

			if entry.Company != "" || entry.Duration != "" {
				history = append(history, entry)
			}
			break // 一行只计一次，命中首个关键词后不再匹配
		}

		if len(history) >= constants.MaxWorkHistoryEntries {
			break
		}
	}

	return history
}

// fallbackExtraction NER不可用时的降级提取：
// 联系方式照常走正则，人名取首个非空行，实体桶与工作经历为空。
func (e *EntityExtractor) fallbackExtraction(text string) *types.ExtractionResult {
	e.log.Debug().Msg("使用降级提取路径")

	primaryPerson := ""
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			primaryPerson = trimmed
			break
		}
	}

	return &types.ExtractionResult{
		Entities:      types.EntityBundle{},
		Contact:       extractContactInfo(text),
		WorkHistory:   nil,
		PrimaryPerson: primaryPerson,
	}
}
