package cache

import (
	"github.com/gomodule/redigo/redis"
)

func Get(key string, conn redis.Conn) (string, error) {
	return redis.String(conn.Do("GET", key))
}

func Set(key string, value interface{}, conn redis.Conn) error {
	_, err := conn.Do("SET", key, value)
	return err
}

func Del(keys []string, conn redis.Conn) error {
	_, err := conn.Do("DEL", redis.Args{}.AddFlat(keys)...)
	return err
}

func HSET(key string, field string, value interface{}, conn redis.Conn) error {
	_, err := conn.Do("HSET", key, field, value)
	return err
}

func HGET(key string, field string, conn redis.Conn) (string, error) {
	return redis.String(conn.Do("HGET", key, field))
}

func HGETALL(key string, conn redis.Conn) (map[string]string, error) {
	return redis.StringMap(conn.Do("HGETALL", key))
}

func SADD(key string, member string, conn redis.Conn) error {
	_, err := conn.Do("SADD", key, member)
	return err
}

func SREM(key string, member string, conn redis.Conn) error {
	_, err := conn.Do("SREM", key, member)
	return err
}

func SMEMBERS(key string, conn redis.Conn) ([]string, error) {
	return redis.Strings(conn.Do("SMEMBERS", key))
}
