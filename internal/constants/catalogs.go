package constants

import "resume-iq-go/internal/types"

// 技能目录与关键词表是进程级只读配置数据：启动时构建一次，此后任何请求都不得修改。

// TechnicalSkills 技术技能目录，保留原始大小写用于命中输出
var TechnicalSkills = []string{
	// 编程语言
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust", "Ruby", "PHP",
	"Swift", "Kotlin", "Scala", "R", "MATLAB", "Perl", "Shell", "Bash", "SQL", "HTML", "CSS",

	// Web框架
	"React", "Angular", "Vue.js", "Next.js", "Django", "Flask", "FastAPI", "Express.js",
	"Spring Boot", "Ruby on Rails", "Laravel", "ASP.NET", "Node.js", "Svelte",

	// 数据库
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch", "Cassandra", "DynamoDB",
	"Oracle", "SQL Server", "SQLite", "Neo4j", "CouchDB", "MariaDB",

	// 云与DevOps
	"AWS", "Azure", "Google Cloud", "GCP", "Docker", "Kubernetes", "Jenkins", "GitLab CI",
	"GitHub Actions", "Terraform", "Ansible", "CloudFormation", "CircleCI", "Travis CI",

	// 数据科学与机器学习
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Scikit-learn", "Keras",
	"Pandas", "NumPy", "Jupyter", "Data Analysis", "Statistics", "NLP", "Computer Vision",
	"Spark", "Hadoop", "Tableau", "Power BI", "Airflow",

	// 移动端
	"iOS", "Android", "React Native", "Flutter", "Xamarin", "SwiftUI",

	// 其他
	"Git", "Linux", "REST API", "GraphQL", "Microservices", "Agile", "Scrum", "CI/CD",
	"Unit Testing", "TDD", "System Design", "Architecture", "Blockchain", "IoT",
}

// SoftSkills 软技能目录
var SoftSkills = []string{
	"Leadership", "Communication", "Teamwork", "Problem Solving", "Critical Thinking",
	"Time Management", "Adaptability", "Creativity", "Attention to Detail", "Organization",
	"Project Management", "Mentoring", "Collaboration", "Presentation", "Negotiation",
	"Strategic Planning", "Decision Making", "Conflict Resolution", "Customer Service",
	"Analytical Thinking", "Innovation", "Initiative", "Flexibility", "Reliability",
}

// LevelKeywords 单个经验级别对应的关键词集合
type LevelKeywords struct {
	Level    string
	Keywords []string
}

// ExperienceLevelKeywords 经验级别关键词表。
// 有序列表按固定优先级求值，首个命中的级别即为结果，与位置无关。
var ExperienceLevelKeywords = []LevelKeywords{
	{types.LevelEntry, []string{"intern", "internship", "graduate", "junior", "entry level", "0-2 years", "fresher"}},
	{types.LevelMid, []string{"mid level", "intermediate", "2-5 years", "3-5 years", "experienced"}},
	{types.LevelSenior, []string{"senior", "lead", "principal", "5+ years", "7+ years", "expert", "advanced"}},
	{types.LevelExecutive, []string{"director", "vp", "vice president", "head of", "chief", "cto", "ceo", "partner"}},
}

// JobTitleKeywords 职位标题关键词，用于经验推断中的职位行挖掘
var JobTitleKeywords = []string{
	"engineer", "developer", "manager", "analyst", "designer",
	"architect", "consultant", "specialist", "coordinator",
	"director", "lead", "senior", "junior", "principal",
	"head of", "vp", "vice president", "chief", "intern",
}

// WorkHistoryTitleKeywords 工作经历提取时识别职位行的关键词
var WorkHistoryTitleKeywords = []string{
	"engineer", "developer", "manager", "analyst", "designer",
	"architect", "consultant", "specialist", "coordinator",
	"director", "lead", "intern", "vp", "vice president",
	"chief", "head of", "senior", "junior", "principal",
}

// MinedSkillStopWords 模式挖掘技能的常见误报过滤表
var MinedSkillStopWords = map[string]bool{
	"I": true, "A": true, "The": true, "In": true, "With": true,
	"For": true, "And": true, "Or": true, "But": true,
}

// Work history关联公司/日期时在职位行前后扩展的窗口大小（字节）
const WorkHistoryWindow = 100

// 各有界列表在产出侧强制执行的上限
const (
	MaxWorkHistoryEntries = 5
	MaxTechnicalSkills    = 20
	MaxSoftSkills         = 10
	MaxJobTitles          = 5
)
