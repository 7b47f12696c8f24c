// Package redisstore provides a token state oracle backed by Redis. Each token
// is stored under <prefix>:token:<token> with the value "request" or
// "access".
package redisstore
