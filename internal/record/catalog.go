package record

// PurchaseCategory is the category id of purchase requests.
const PurchaseCategory = "purchase"

// Category is a classification key with its display metadata.
type Category struct {
	ID            string
	Label         string
	Color         string
	SubCategories []string
}

var categories = []Category{
	{ID: PurchaseCategory, Label: "طلبات الشراء", Color: "#1B3F94", SubCategories: []string{"توريد أدوية", "أدوات طبية", "قرطاسية", "صيانة وأجهزة"}},
	{ID: "leaves", Label: "شؤون الموظفين والإجازات", Color: "#1B3F94", SubCategories: []string{"إجازة سنوية", "إجازة مرضية", "إجازة اضطرارية", "تعديل رصيد"}},
	{ID: "medical_ops", Label: "العمليات الطبية", Color: "#ED1C24", SubCategories: []string{"تجهيز غرف", "مراجعة بروتوكول", "طلبات أدوية", "مواعيد الطوارئ"}},
	{ID: "achievement", Label: "التحقيقات والإنجازات", Color: "#f59e0b", SubCategories: []string{"تحقيق إداري", "تحقيق طبي", "تميز ربع سنوي"}},
	{ID: "followup", Label: "جولات المتابعة", Color: "#22c55e", SubCategories: []string{"جولة النظافة", "سلامة المرضى", "تفتيش المخازن"}},
	{ID: "advertising", Label: "التسويق والعروض", Color: "#ec4899", SubCategories: []string{"عروض الليزر", "فحوصات شاملة", "حملات توعية"}},
	{ID: "finance", Label: "المالية والتحصيل", Color: "#1B3F94", SubCategories: []string{"مطالبات تأمين", "تقفيل وردية", "مشتريات طبية"}},
	{ID: "operations", Label: "الصيانة والتشغيل", Color: "#f97316", SubCategories: []string{"صيانة أجهزة", "تراخيص صحية", "تجهيزات هندسية"}},
	{ID: "compliance", Label: "الجودة والامتثال", Color: "#14b8a6", SubCategories: []string{"معايير سباهي", "تدقيق داخلي", "مكافحة عدوى"}},
}

// Categories returns the known categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// LookupCategory finds a category by id.
func LookupCategory(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryLabel returns the label of a category id, or the id itself when unknown.
func CategoryLabel(id string) string {
	if c, ok := LookupCategory(id); ok {
		return c.Label
	}
	return id
}

type display struct {
	Label string
	Color string
}

var statusDisplay = map[Status]display{
	StatusDraft:            {Label: "مسودة", Color: "#94a3b8"},
	StatusPending:          {Label: "قيد الانتظار", Color: "#64748b"},
	StatusInProgress:       {Label: "جاري التنفيذ", Color: "#1B3F94"},
	StatusSubmitted:        {Label: "تم الرفع", Color: "#8b5cf6"},
	StatusAwaitingApproval: {Label: "بانتظار الاعتماد", Color: "#f59e0b"},
	StatusApproved:         {Label: "معتمد", Color: "#22c55e"},
	StatusRejected:         {Label: "مرفوض", Color: "#ED1C24"},
	StatusCompleted:        {Label: "تم الإنجاز", Color: "#10b981"},
	StatusCancelled:        {Label: "ملغي", Color: "#6b7280"},
	StatusOverdue:          {Label: "متأخر جداً", Color: "#ED1C24"},
}

var importanceDisplay = map[Importance]display{
	ImportanceCritical: {Label: "حرج جداً", Color: "#ED1C24"},
	ImportanceHigh:     {Label: "عالية", Color: "#f43f5e"},
	ImportanceMedium:   {Label: "متوسطة", Color: "#f59e0b"},
	ImportanceLow:      {Label: "منخفضة", Color: "#22c55e"},
}
