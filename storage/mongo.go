package storage

import (
	"context"
	"fmt"
	"time"

	"git.fiblab.net/sim/transit/reader"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const CONNECT_TIMEOUT = 10 * time.Second

// NewClient 连接MongoDB并检查连通性
func NewClient(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, ErrEmptyURI
	}
	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(CONNECT_TIMEOUT).
		SetServerSelectionTimeout(CONNECT_TIMEOUT).
		SetRetryReads(true)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// LoadBaseRequests 读取集合中的全部目录加载请求，按_id排序以保持写入顺序
func LoadBaseRequests(ctx context.Context, coll *mongo.Collection) ([]reader.BaseRequest, error) {
	cursor, err := coll.Find(ctx, BaseRequestFilter(), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)
	var requests []reader.BaseRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	log.Infof("loaded %d base requests from %s.%s", len(requests), coll.Database().Name(), coll.Name())
	return requests, nil
}

// SaveBaseRequests 替换集合内容，用于将文件中的目录导入数据库
func SaveBaseRequests(ctx context.Context, coll *mongo.Collection, requests []reader.BaseRequest) error {
	if _, err := coll.DeleteMany(ctx, BaseRequestFilter()); err != nil {
		return fmt.Errorf("failed to clear %s: %w", coll.Name(), err)
	}
	if len(requests) == 0 {
		return nil
	}
	docs := make([]any, len(requests))
	for i, req := range requests {
		docs[i] = req
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	log.Infof("saved %d base requests to %s.%s", len(requests), coll.Database().Name(), coll.Name())
	return nil
}

// BaseRequestFilter 只匹配车站与线路文档
func BaseRequestFilter() bson.D {
	return bson.D{{Key: "type", Value: bson.D{{Key: "$in", Value: bson.A{reader.REQUEST_STOP, reader.REQUEST_BUS}}}}}
}
