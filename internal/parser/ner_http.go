package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"resume-iq-go/internal/config"
)

// TaggedEntity NER服务返回的单条实体标注
type TaggedEntity struct {
	Word  string  `json:"word"`
	Label string  `json:"entity_group"`
	Score float64 `json:"score"`
	Start int     `json:"start"`
	End   int     `json:"end"`
}

// EntityTagger 命名实体识别能力接口
type EntityTagger interface {
	// Tag 对文本做token分类，返回聚合后的实体标注
	Tag(ctx context.Context, text string) ([]TaggedEntity, error)
}

// HTTPEntityTagger 基于HuggingFace风格token-classification推理端点的EntityTagger实现
type HTTPEntityTagger struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPEntityTagger 创建新的NER客户端
func NewHTTPEntityTagger(apiKey string, nerCfg config.NERConfig) (*HTTPEntityTagger, error) {
	if nerCfg.BaseURL == "" {
		return nil, fmt.Errorf("NER服务地址不能为空")
	}

	model := nerCfg.Model
	if model == "" {
		model = "dbmdz/bert-large-cased-finetuned-conll03-english"
	}
	timeout := time.Duration(nerCfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	tagger := &HTTPEntityTagger{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(nerCfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	if nerCfg.QPM > 0 {
		tagger.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(nerCfg.QPM)), 1)
	}

	return tagger, nil
}

// nerRequest token-classification 请求结构
type nerRequest struct {
	Inputs     string                 `json:"inputs"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// nerAPIError 推理端点返回的错误对象
type nerAPIError struct {
	Error string `json:"error"`
}

// Tag 调用推理端点并解析实体标注
func (t *HTTPEntityTagger) Tag(ctx context.Context, text string) ([]TaggedEntity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("等待限流令牌失败: %w", err)
		}
	}

	reqBody := nerRequest{
		Inputs: text,
		Parameters: map[string]interface{}{
			"aggregation_strategy": "simple",
		},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	url := t.baseURL + "/" + t.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiError nerAPIError
		if json.Unmarshal(body, &apiError) == nil && apiError.Error != "" {
			return nil, fmt.Errorf("NER API调用失败, 状态码: %d, 错误: %s", resp.StatusCode, apiError.Error)
		}
		return nil, fmt.Errorf("NER API调用失败, 状态码: %d, 响应: %s", resp.StatusCode, string(body))
	}

	var entities []TaggedEntity
	if err := json.Unmarshal(body, &entities); err != nil {
		// 部分部署对单条输入返回嵌套数组
		var nested [][]TaggedEntity
		if err2 := json.Unmarshal(body, &nested); err2 == nil && len(nested) > 0 {
			return nested[0], nil
		}
		return nil, fmt.Errorf("解析NER响应失败: %w", err)
	}

	return entities, nil
}
