package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/broker"
	"github.com/fekuna/omnipos-warehouse-service/pkg/search"
	"go.uber.org/zap"
)

const (
	eventInventoryAdded   = "InventoryAdded"
	eventInventoryUpdated = "InventoryUpdated"
	eventInventoryDeleted = "InventoryDeleted"

	searchLimit  = 100
	syncTimeout  = 5 * time.Second
	indexMapping = `{
		"mappings": {
			"properties": {
				"user_id": { "type": "long" },
				"item_sku": { "type": "keyword" },
				"product_name": { "type": "text" },
				"category": { "type": "text" },
				"warehouse_location": { "type": "keyword" },
				"rack_location": { "type": "keyword" },
				"quantity_in_stock": { "type": "integer" },
				"cost_per_unit": { "type": "double" },
				"total_value": { "type": "double" },
				"last_restocked": { "type": "date" }
			}
		}
	}`
)

// EnsureIndex creates the search index when search is configured.
func EnsureIndex(ctx context.Context, es *search.Client, index string) error {
	if es == nil {
		return nil
	}
	return es.CreateIndex(ctx, index, indexMapping)
}

func (uc *inventoryUseCase) SearchInventories(ctx context.Context, userID int64, term string) ([]model.Inventory, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	term = search.NormalizeTerm(term)
	if term == "" {
		return uc.ListInventories(ctx, userID)
	}

	if uc.es != nil {
		ids, err := uc.searchIndex(ctx, userID, term)
		if err == nil {
			if len(ids) == 0 {
				return []model.Inventory{}, nil
			}
			// The index may lag behind deletes, so rows are loaded from the database.
			return uc.list(ctx, &dto.InventoryFilters{UserID: userID, IDs: ids})
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	return uc.list(ctx, &dto.InventoryFilters{UserID: userID, Search: term})
}

func (uc *inventoryUseCase) searchIndex(ctx context.Context, userID int64, term string) ([]int64, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"query_string": map[string]interface{}{
							"query":  fmt.Sprintf("*%s*", search.EscapeQueryString(term)),
							"fields": []string{"item_sku^3", "product_name^2", "category"},
						},
					},
				},
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"user_id": userID}},
				},
			},
		},
		"_source": false,
		"size":    searchLimit,
	}

	res, err := uc.es.Search(ctx, uc.esIndex, q)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected document id %q", hit.ID)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// afterWrite fans a committed change out to Kafka and Elasticsearch.
// Neither is a source of truth, so failures are only logged.
func (uc *inventoryUseCase) afterWrite(eventType string, inv *model.Inventory) {
	snapshot := *inv
	if uc.producer != nil {
		go uc.publish(eventType, &snapshot)
	}
	if uc.es != nil {
		go uc.syncToElastic(eventType, &snapshot)
	}
}

func (uc *inventoryUseCase) publish(eventType string, inv *model.Inventory) {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	key := strconv.FormatInt(inv.UserID, 10) + ":" + inv.ItemSKU
	if err := uc.producer.Publish(ctx, key, broker.NewEvent(eventType, inv)); err != nil {
		uc.logger.Error("failed to publish inventory event",
			zap.String("event_type", eventType),
			zap.Int64("inventory_id", inv.ID),
			zap.Error(err),
		)
	}
}

func (uc *inventoryUseCase) syncToElastic(eventType string, inv *model.Inventory) {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	id := strconv.FormatInt(inv.ID, 10)
	var err error
	if eventType == eventInventoryDeleted {
		err = uc.es.Delete(ctx, uc.esIndex, id)
	} else {
		err = uc.es.Index(ctx, uc.esIndex, id, inv)
	}
	if err != nil {
		uc.logger.Error("failed to sync inventory to elastic", zap.Int64("inventory_id", inv.ID), zap.Error(err))
	}
}
