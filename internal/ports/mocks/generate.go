//go:generate mockgen -source=../record_sink.go    -destination=./mock_record_sink.go    -package=mocks
//go:generate mockgen -source=../message_source.go -destination=./mock_message_source.go -package=mocks
//go:generate mockgen -source=../normalizer.go     -destination=./mock_normalizer.go     -package=mocks

package mocks
