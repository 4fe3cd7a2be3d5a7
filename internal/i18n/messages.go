package i18n

var messagesFR = map[string]string{
	"error.bad_request":            "Requête invalide",
	"error.unauthorized":           "Authentification requise",
	"error.forbidden":              "Accès refusé",
	"error.not_found":              "Ressource introuvable",
	"error.internal":               "Erreur interne du serveur",
	"error.route_not_found":        "Route introuvable",
	"error.rate_limited":           "Trop de requêtes, réessayez dans %d secondes",
	"error.rate_limit_unavailable": "Limitation de débit indisponible",
	"error.jwt_secret_missing":     "Secret JWT non configuré",
	"error.auth_header_missing":    "En-tête Authorization manquant",
	"error.auth_header_invalid":    "En-tête Authorization invalide",
	"error.token_invalid":          "Jeton invalide ou expiré",
	"error.token_revoked":          "Jeton révoqué, veuillez vous reconnecter",
	"error.admin_id_invalid":       "Identifiant administrateur invalide",
	"error.admin_id_type_invalid":  "Type d'identifiant administrateur invalide",

	"error.preorder_not_found":      "Précommande introuvable",
	"error.preorder_not_editable":   "La précommande n'est plus modifiable",
	"error.preorder_validation":     "Champs obligatoires manquants : %s",
	"error.preorder_not_frozen":     "La précommande n'a pas encore été soumise",
	"error.preorder_status_invalid": "Transition de statut non autorisée",
	"error.preorder_items_invalid":  "Articles invalides (quantité maximale par ligne dépassée)",
	"error.cart_product_not_found":  "Produit inconnu ou inactif dans le panier",
	"error.delivery_mode_invalid":   "Mode de livraison invalide (LIVRAISON ou RETRAIT)",
	"error.preorder_fetch_failed":   "Impossible de charger la précommande",
	"error.preorder_update_failed":  "Impossible de mettre à jour la précommande",

	"error.product_not_found":      "Produit introuvable",
	"error.product_invalid":        "Produit invalide",
	"error.product_sku_conflict":   "Ce SKU est déjà utilisé",
	"error.product_in_use":         "Produit référencé par des précommandes",
	"error.product_import_empty":   "Aucune ligne produit valide",
	"error.product_import_invalid": "Fichier d'import invalide",
	"error.product_fetch_failed":   "Impossible de charger les produits",
	"error.product_save_failed":    "Impossible d'enregistrer le produit",

	"error.grade_discount_invalid":   "Remise invalide (0 à 100)",
	"error.grade_discount_not_found": "Remise introuvable pour ce grade",

	"error.invalid_credentials":      "Identifiants incorrects",
	"error.invalid_password":         "Mot de passe actuel incorrect",
	"error.password_too_long":        "Le mot de passe ne doit pas dépasser %d octets",
	"error.password_min_length":      "Le mot de passe doit contenir au moins %d caractères",
	"error.password_require_upper":   "Le mot de passe doit contenir une majuscule",
	"error.password_require_lower":   "Le mot de passe doit contenir une minuscule",
	"error.password_require_number":  "Le mot de passe doit contenir un chiffre",
	"error.password_require_special": "Le mot de passe doit contenir un caractère spécial",
	"error.password_weak":            "Mot de passe trop faible",

	"error.captcha_required":       "Captcha requis",
	"error.captcha_invalid":        "Captcha incorrect",
	"error.captcha_config_invalid": "Configuration captcha invalide",

	"error.upload_empty":            "Aucun fichier reçu",
	"error.upload_too_large":        "Fichier trop volumineux",
	"error.upload_type_not_allowed": "Type de fichier non autorisé",
	"error.upload_failed":           "Échec du téléversement",

	"error.date_range_invalid": "Plage de dates invalide (AAAA-MM-JJ)",
	"error.stats_fetch_failed": "Impossible de calculer les statistiques",
}

var messagesEN = map[string]string{
	"error.bad_request":            "Bad request",
	"error.unauthorized":           "Authentication required",
	"error.forbidden":              "Forbidden",
	"error.not_found":              "Resource not found",
	"error.internal":               "Internal server error",
	"error.route_not_found":        "Route not found",
	"error.rate_limited":           "Too many requests, retry in %d seconds",
	"error.rate_limit_unavailable": "Rate limiter unavailable",
	"error.jwt_secret_missing":     "JWT secret is not configured",
	"error.auth_header_missing":    "Missing Authorization header",
	"error.auth_header_invalid":    "Invalid Authorization header",
	"error.token_invalid":          "Token invalid or expired",
	"error.token_revoked":          "Token revoked, please sign in again",
	"error.admin_id_invalid":       "Invalid admin id",
	"error.admin_id_type_invalid":  "Invalid admin id type",

	"error.preorder_not_found":      "Preorder not found",
	"error.preorder_not_editable":   "Preorder can no longer be edited",
	"error.preorder_validation":     "Missing required fields: %s",
	"error.preorder_not_frozen":     "Preorder has not been submitted yet",
	"error.preorder_status_invalid": "Status transition not allowed",
	"error.preorder_items_invalid":  "Invalid items (maximum quantity per line exceeded)",
	"error.cart_product_not_found":  "Cart references an unknown or inactive product",
	"error.delivery_mode_invalid":   "Invalid delivery mode (LIVRAISON or RETRAIT)",
	"error.preorder_fetch_failed":   "Failed to load preorder",
	"error.preorder_update_failed":  "Failed to update preorder",

	"error.product_not_found":      "Product not found",
	"error.product_invalid":        "Invalid product",
	"error.product_sku_conflict":   "SKU already in use",
	"error.product_in_use":         "Product is referenced by preorders",
	"error.product_import_empty":   "No valid product rows",
	"error.product_import_invalid": "Invalid import payload",
	"error.product_fetch_failed":   "Failed to load products",
	"error.product_save_failed":    "Failed to save product",

	"error.grade_discount_invalid":   "Invalid discount (0 to 100)",
	"error.grade_discount_not_found": "No discount for this grade",

	"error.invalid_credentials":      "Invalid username or password",
	"error.invalid_password":         "Current password is incorrect",
	"error.password_too_long":        "Password must not exceed %d bytes",
	"error.password_min_length":      "Password must be at least %d characters",
	"error.password_require_upper":   "Password must contain an uppercase letter",
	"error.password_require_lower":   "Password must contain a lowercase letter",
	"error.password_require_number":  "Password must contain a digit",
	"error.password_require_special": "Password must contain a special character",
	"error.password_weak":            "Password too weak",

	"error.captcha_required":       "Captcha required",
	"error.captcha_invalid":        "Captcha incorrect",
	"error.captcha_config_invalid": "Captcha configuration invalid",

	"error.upload_empty":            "No file received",
	"error.upload_too_large":        "File too large",
	"error.upload_type_not_allowed": "File type not allowed",
	"error.upload_failed":           "Upload failed",

	"error.date_range_invalid": "Invalid date range (YYYY-MM-DD)",
	"error.stats_fetch_failed": "Failed to compute statistics",
}
