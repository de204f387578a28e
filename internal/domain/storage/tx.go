package storage

import (
	"context"
)

// TxManager 事务管理器接口
// 设计说明：
// 1. 由domain层定义接口，infrastructure层（mysql.TxManager）实现
// 2. 应用层用例只依赖接口，测试时可注入直接执行fn的假实现
// 3. fn内的所有Repository操作在同一事务中执行：
//    fn返回error时回滚，返回nil时提交
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
