package model

// SubmissionStatus 提交记录的处理状态
type SubmissionStatus string

const (
	StatusNew       SubmissionStatus = "new"       // 新进线索
	StatusViewed    SubmissionStatus = "viewed"    // 已查看
	StatusContacted SubmissionStatus = "contacted" // 已联系
	StatusClosed    SubmissionStatus = "closed"    // 已关闭
)

// ValidStatus 状态值是否合法。状态只通过管理操作变更，
// 方向上不做强制（UI 只给前进按钮，数据层不拦回退）。
func ValidStatus(s SubmissionStatus) bool {
	switch s {
	case StatusNew, StatusViewed, StatusContacted, StatusClosed:
		return true
	}
	return false
}

// ContactSubmission 联络表单的一条提交记录，本地文档存储中的唯一实体。
// 字段名与前端表单保持 camelCase。
type ContactSubmission struct {
	ID        string           `json:"id"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Email     string           `json:"email"`
	Business  string           `json:"business"`
	Location  string           `json:"location"`
	Service   string           `json:"service,omitempty"`
	Budget    string           `json:"budget,omitempty"`
	Phone     string           `json:"phone,omitempty"`
	Message   string           `json:"message,omitempty"`
	Timestamp string           `json:"timestamp"` // RFC3339，捕获时写入后不再变
	Status    SubmissionStatus `json:"status"`
}

// Name 导出与邮件场景用的全名
func (s ContactSubmission) Name() string {
	return s.FirstName + " " + s.LastName
}

// 表单里的固定选项集。service/budget 可缺省，给了就必须在集合内。
var (
	ServiceOptions = []string{
		"Web Design",
		"AI Automation",
		"SEO Optimization",
		"E-commerce Development",
		"Branding",
		"Maintenance & Support",
	}

	BudgetOptions = []string{
		"Under ₹50,000",
		"₹50,000 - ₹1,50,000",
		"₹1,50,000 - ₹5,00,000",
		"Above ₹5,00,000",
	}

	CityOptions = []string{
		"Mumbai",
		"Pune",
		"Delhi",
		"Bangalore",
		"Hyderabad",
		"Chennai",
		"Other",
	}
)

// InServiceOptions service 值是否在固定集合内
func InServiceOptions(v string) bool {
	return inOptions(ServiceOptions, v)
}

// InBudgetOptions budget 值是否在固定集合内
func InBudgetOptions(v string) bool {
	return inOptions(BudgetOptions, v)
}

func inOptions(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
