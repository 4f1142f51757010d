package processor

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// WithEntityExtractor 设置实体提取组件
func WithEntityExtractor(extractor EntityExtractor) ComponentOpt {
	return func(c *Components) {
		c.Entities = extractor
	}
}

// WithSkillsMatcher 设置技能匹配组件
func WithSkillsMatcher(matcher SkillsMatcher) ComponentOpt {
	return func(c *Components) {
		c.Skills = matcher
	}
}

// WithExperienceClassifier 设置经验推断组件
func WithExperienceClassifier(classifier ExperienceClassifier) ComponentOpt {
	return func(c *Components) {
		c.Experience = classifier
	}
}

// WithSimilarityScorer 设置相似度组件
func WithSimilarityScorer(scorer SimilarityScorer) ComponentOpt {
	return func(c *Components) {
		c.Similarity = scorer
	}
}

// WithSimilarityWeight 设置整体相似度权重
func WithSimilarityWeight(weight float64) SettingOpt {
	return func(s *Settings) {
		s.SimilarityWeight = weight
	}
}

// WithSkillWeight 设置技能匹配权重
func WithSkillWeight(weight float64) SettingOpt {
	return func(s *Settings) {
		s.SkillWeight = weight
	}
}

// WithSectionWeight 设置章节相似度权重
func WithSectionWeight(weight float64) SettingOpt {
	return func(s *Settings) {
		s.SectionWeight = weight
	}
}
