// Package store 提供 core.KeyValueStore 的两个实现：
// 内存版用于测试与单机运行，Redis 版用于结果对外分发。
package store
