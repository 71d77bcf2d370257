package classifier

import (
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
)

// New builds the configured strategy, wrapped in the cache when enabled and a
// cache is available.
func New(cfg *config.Config, client domain.CompletionClient, c domain.Cache) domain.TopicClassifier {
	var (
		base      domain.TopicClassifier
		namespace string
	)
	switch cfg.Classifier.Strategy {
	case config.StrategyRules:
		base = NewRuleClassifier()
		namespace = config.StrategyRules
	default:
		base = NewModelClassifier(client, cfg.LLM.ClassifierModel, cfg.LLM.ClassifierMaxTokens)
		namespace = config.StrategyModel + "_" + cfg.LLM.ClassifierModel
	}

	if cfg.Classifier.CacheEnabled && c != nil {
		return NewCachedClassifier(base, c, cfg.Cache.ClassificationTTL, namespace)
	}
	return base
}
