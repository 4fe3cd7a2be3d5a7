package constants

// 预订单状态常量
const (
	PreorderStatusDraft     = "DRAFT"
	PreorderStatusSubmitted = "SUBMITTED"
	PreorderStatusInvoiced  = "INVOICED"
	PreorderStatusPaid      = "PAID"
	PreorderStatusCancelled = "CANCELLED"
)

// 配送与支付方式常量
const (
	DeliveryModeDelivery = "LIVRAISON"
	DeliveryModePickup   = "RETRAIT"
)

// 发票号前缀
const (
	InvoiceReferencePrefix = "INV"
)

// 商品目录分页常量
const (
	CatalogDefaultPageSize    = 24
	CatalogMaxPageSize        = 100
	AdminProductDefaultTake   = 200
	AdminProductMinTake       = 10
	AdminProductMaxTake       = 500
	AdminOrderDefaultPageSize = 20
	AdminOrderMinPageSize     = 10
	AdminOrderMaxPageSize     = 100
	StatsTopProductsLimit     = 5
)

// 后台订单列表排序常量
const (
	OrderSortCreatedAt = "createdAt"
	OrderSortTotal     = "total"
	SortDirAsc         = "asc"
	SortDirDesc        = "desc"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneCreateDraft = "create_draft"
	CaptchaSceneAdminLogin  = "admin_login"
)

// 队列常量
const (
	QueueDefault                = "default"
	QueueCritical               = "critical"
	TaskPreorderBillingNotify   = "preorder:billing_notify"
	TaskIDPrefixBillingNotify   = "billing-notify:"
	WorkerDraftSweepServiceName = "draft-sweeper"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "appfbo"
)

// 上传场景常量
const (
	UploadSceneProducts = "products"
)

// 审计日志常量
const (
	AuditActionPreorderInvoice     = "preorder_invoice"
	AuditActionPreorderPay         = "preorder_pay"
	AuditActionPreorderStatusPatch = "preorder_status_patch"
	AuditActionAdminRolesSet       = "admin_roles_set"
	AuditTargetPreorder            = "preorder"
	AuditTargetAdmin               = "admin"
)
