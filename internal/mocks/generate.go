package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/task --output domain/task --outpkg taskmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Directory --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename directory_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Directory --dir ../domain/clubuser --output domain/clubuser --outpkg clubusermock --filename directory_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Catalog --dir ../domain/template --output domain/template --outpkg templatemock --filename catalog_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Sink --dir ../domain/audit --output domain/audit --outpkg auditmock --filename sink_mock.go
