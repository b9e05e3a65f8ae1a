package repository

import (
	"context"
	"time"

	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"
)

const searchAttempts int = 3

var searchRetryDelay = 5 * time.Second

func search(searchService *elastic.SearchService) (*elastic.SearchResult, error) {
	var result *elastic.SearchResult
	var err error

	for attempt := 1; attempt <= searchAttempts; attempt++ {
		result, err = searchService.Do(context.Background())
		if err == nil || err.Error() != "elastic: Error 429 (Too Many Requests)" {
			return result, err
		}

		zap.L().With(zap.Int("attempt", attempt)).Warn("Elastic: 429 (Too Many Requests)")
		time.Sleep(searchRetryDelay)
	}

	return result, err
}
