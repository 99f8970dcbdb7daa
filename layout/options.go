package layout

// BuildOptions 配置从标记文档构建布局树的行为。
type BuildOptions struct {
	Strict bool // 遇到未知属性时报错，默认忽略
}
