// Package metrics 提供店铺服务的运行时指标采集与输出功能
// 所有计数器均使用原子操作，可在高并发请求下安全使用
package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sync/atomic"
)

// 默认的Prometheus指标前缀
const defaultMetricPrefix = "docemila"

// Metrics 汇总HTTP层与领域操作的计数器
type Metrics struct {
	// HTTP请求计数，按状态码类别划分
	requests2xx uint64
	requests4xx uint64
	requests5xx uint64

	// 领域操作计数
	filterRuns     uint64
	cartAdds       uint64
	cartRemoves    uint64
	cartUpdates    uint64
	authLogins     uint64
	authRegisters  uint64
	contactRelayed uint64
}

// New 创建一个新的指标收集器
func New() *Metrics {
	return &Metrics{}
}

// RecordRequest 记录一次HTTP请求及其状态码
func (m *Metrics) RecordRequest(status int) {
	switch {
	case status >= 500:
		atomic.AddUint64(&m.requests5xx, 1)
	case status >= 400:
		atomic.AddUint64(&m.requests4xx, 1)
	default:
		atomic.AddUint64(&m.requests2xx, 1)
	}
}

// RecordFilterRun 记录一次目录过滤管道执行
func (m *Metrics) RecordFilterRun() { atomic.AddUint64(&m.filterRuns, 1) }

// RecordCartAdd 记录一次购物车添加操作
func (m *Metrics) RecordCartAdd() { atomic.AddUint64(&m.cartAdds, 1) }

// RecordCartRemove 记录一次购物车移除操作
func (m *Metrics) RecordCartRemove() { atomic.AddUint64(&m.cartRemoves, 1) }

// RecordCartUpdate 记录一次购物车数量更新操作
func (m *Metrics) RecordCartUpdate() { atomic.AddUint64(&m.cartUpdates, 1) }

// RecordLogin 记录一次登录尝试
func (m *Metrics) RecordLogin() { atomic.AddUint64(&m.authLogins, 1) }

// RecordRegister 记录一次注册尝试
func (m *Metrics) RecordRegister() { atomic.AddUint64(&m.authRegisters, 1) }

// RecordContactRelay 记录一次联系消息转发
func (m *Metrics) RecordContactRelay() { atomic.AddUint64(&m.contactRelayed, 1) }

// Snapshot 指标的一致性快照
type Snapshot struct {
	Requests2xx    uint64 `json:"requests_2xx"`
	Requests4xx    uint64 `json:"requests_4xx"`
	Requests5xx    uint64 `json:"requests_5xx"`
	FilterRuns     uint64 `json:"filter_runs"`
	CartAdds       uint64 `json:"cart_adds"`
	CartRemoves    uint64 `json:"cart_removes"`
	CartUpdates    uint64 `json:"cart_updates"`
	AuthLogins     uint64 `json:"auth_logins"`
	AuthRegisters  uint64 `json:"auth_registers"`
	ContactRelayed uint64 `json:"contact_relayed"`
}

// GetSnapshot 返回当前计数器的快照
func (m *Metrics) GetSnapshot() Snapshot {
	return Snapshot{
		Requests2xx:    atomic.LoadUint64(&m.requests2xx),
		Requests4xx:    atomic.LoadUint64(&m.requests4xx),
		Requests5xx:    atomic.LoadUint64(&m.requests5xx),
		FilterRuns:     atomic.LoadUint64(&m.filterRuns),
		CartAdds:       atomic.LoadUint64(&m.cartAdds),
		CartRemoves:    atomic.LoadUint64(&m.cartRemoves),
		CartUpdates:    atomic.LoadUint64(&m.cartUpdates),
		AuthLogins:     atomic.LoadUint64(&m.authLogins),
		AuthRegisters:  atomic.LoadUint64(&m.authRegisters),
		ContactRelayed: atomic.LoadUint64(&m.contactRelayed),
	}
}

// Export 导出Prometheus文本格式的指标
func (m *Metrics) Export() string {
	s := m.GetSnapshot()
	var buf bytes.Buffer

	addCounter(&buf, "requests_2xx_total", "Total HTTP requests answered with 2xx/3xx", s.Requests2xx)
	addCounter(&buf, "requests_4xx_total", "Total HTTP requests answered with 4xx", s.Requests4xx)
	addCounter(&buf, "requests_5xx_total", "Total HTTP requests answered with 5xx", s.Requests5xx)
	addCounter(&buf, "filter_runs_total", "Total catalog filter pipeline executions", s.FilterRuns)
	addCounter(&buf, "cart_adds_total", "Total cart add operations", s.CartAdds)
	addCounter(&buf, "cart_removes_total", "Total cart remove operations", s.CartRemoves)
	addCounter(&buf, "cart_updates_total", "Total cart quantity updates", s.CartUpdates)
	addCounter(&buf, "auth_logins_total", "Total login attempts", s.AuthLogins)
	addCounter(&buf, "auth_registers_total", "Total register attempts", s.AuthRegisters)
	addCounter(&buf, "contact_relayed_total", "Total contact messages relayed", s.ContactRelayed)

	return buf.String()
}

// Handler 返回暴露指标的HTTP处理函数
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		fmt.Fprint(w, m.Export())
	}
}

// addCounter 以Prometheus文本格式追加一个计数器
func addCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s_%s %s\n", defaultMetricPrefix, name, help)
	fmt.Fprintf(buf, "# TYPE %s_%s counter\n", defaultMetricPrefix, name)
	fmt.Fprintf(buf, "%s_%s %d\n", defaultMetricPrefix, name, value)
}
