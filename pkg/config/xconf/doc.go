// Package xconf 提供统一的配置加载和解析功能，基于 koanf 实现。
//
// # 设计理念
//
// xconf 定位为最小化配置加载器，负责文件/字节数据的加载与反序列化。
// 不负责配置治理（必选字段校验、默认值注入），这些由使用方完成，
// 例如 xrid.ParseConfig 会逐项校验原始值的类型与取值范围。
//
//   - 工厂函数：New, NewFromBytes
//   - Lookup() 返回未经类型转换的原始值，便于严格类型校验
//   - Unmarshal() 基于 mapstructure 反序列化到结构体
//
// # 支持的格式
//
//   - YAML（默认，推荐）：.yaml, .yml
//   - JSON：.json
//
// # 原始值类型
//
// YAML 解析得到的整数为 int，JSON 解析得到的数字为 float64。
// 需要严格区分类型的调用方应通过 Lookup 自行判断。
//
// # 并发安全
//
// Config 创建后只读，所有方法都可并发调用。
package xconf
