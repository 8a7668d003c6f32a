package handler

import "github.com/jessicayin66/newslens/internal/model"

type BalancedArticlesRequest struct {
	Category      string         `json:"category"`
	TargetBalance map[string]int `json:"target_balance"`
}

type BalanceInfo struct {
	TotalAnalyzed int            `json:"total_analyzed"`
	Selected      int            `json:"selected"`
	TargetBalance map[string]int `json:"target_balance"`
}

type BalancedArticlesResponse struct {
	Articles    []model.Article `json:"articles"`
	BalanceInfo BalanceInfo     `json:"balance_info"`
}

type BiasStatsResponse struct {
	Category         string             `json:"category"`
	BiasDistribution map[string]int     `json:"bias_distribution"`
	Percentages      map[string]float64 `json:"percentages"`
	TotalAnalyzed    int                `json:"total_analyzed"`
}
