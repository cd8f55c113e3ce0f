//go:generate mockgen -source=../runner.go -destination=./mock_runner_deps.go -package=mocks

package mocks
