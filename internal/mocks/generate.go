package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Registry --dir ../domain/match --output domain/match --outpkg matchmock --filename registry_mock.go
