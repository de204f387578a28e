// Package logger 提供基于zap的全局结构化日志
//
// 设计说明：
// 1. 全局单例，Init后通过L()获取（也注册到zap.ReplaceGlobals）
// 2. debug模式使用Development配置（彩色、human-readable）
// 3. release模式使用Production配置（JSON格式，便于采集）
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Init 初始化全局日志
// mode: debug | release | test
func Init(mode string) error {
	var cfg zap.Config

	if mode == "release" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return err
	}

	log = l
	zap.ReplaceGlobals(l)
	return nil
}

// L 获取全局日志实例
// 未初始化时退化为Development日志，保证测试环境可用
func L() *zap.Logger {
	if log == nil {
		log, _ = zap.NewDevelopment()
	}
	return log
}

// Sync 刷新缓冲的日志条目（main退出前调用）
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
