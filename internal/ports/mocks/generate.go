//go:generate mockgen -source=../chunk_store.go        -destination=./mock_chunk_store.go        -package=mocks
//go:generate mockgen -source=../market_api.go         -destination=./mock_market_api.go         -package=mocks
//go:generate mockgen -source=../item_cache.go         -destination=./mock_item_cache.go         -package=mocks
//go:generate mockgen -source=../logger.go             -destination=./mock_logger.go             -package=mocks
//go:generate mockgen -source=../message_consumer.go   -destination=./mock_message_consumer.go   -package=mocks
//go:generate mockgen -source=../comparison_service.go -destination=./mock_comparison_service.go -package=mocks

package mocks
