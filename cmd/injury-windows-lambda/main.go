package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/tyler180/injury-windows/internal/app/recovery"
)

func main() {
	lambda.Start(recovery.LambdaEntrypoint)
}
