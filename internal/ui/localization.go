package ui

import (
	"fmt"

	"fyne.io/fyne/v2/lang"
	"golang.org/x/text/language"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle = "app_title"
	KeySave     = "save"
	KeyCancel   = "cancel"
	KeyRemove   = "remove"
	KeyAdd      = "add"
	KeyOK       = "ok"
	KeyNoDrives = "no_drives"

	// Tray menu
	KeyShow      = "show"
	KeyHide      = "hide"
	KeyStayOnTop = "stay_on_top"
	KeyRefresh   = "refresh"
	KeyQuit      = "quit"

	// Settings page
	KeyAppSettings       = "app_settings"
	KeyAutoRefresh       = "auto_refresh"
	KeyEnableAutoRefresh = "enable_auto_refresh"
	KeyRefreshInterval   = "refresh_interval"
	KeyWindow            = "window"
	KeyRunAtStartup      = "run_at_startup"
	KeyLanguage          = "language"
	KeyRclonePath        = "rclone_path"
	KeyConfigFile        = "config_file"
	KeyOpenConfigFolder  = "open_config_folder"
	KeyInvalidInterval   = "invalid_interval"
	KeyDebugLogging      = "debug_logging"

	// Card edit mode
	KeyDisplayName      = "display_name"
	KeyDisplayNameEmpty = "display_name_empty"
	KeyDropHere         = "drop_here"

	// Setup dialog
	KeySetupTitle        = "setup_title"
	KeySetupInstructions = "setup_instructions"
	KeyAvailableRemotes  = "available_remotes"
	KeyManualRemote      = "manual_remote"
	KeyValidating        = "validating"

	// Errors and notices
	KeyRcloneNotFound        = "rclone_not_found"
	KeyRcloneNotFoundMessage = "rclone_not_found_message"
	KeyRemoteNotFound        = "remote_not_found"
	KeyRemoteNotFoundMessage = "remote_not_found_message"
	KeyValidationTimeout     = "validation_timeout"
	KeyValidationTimeoutMsg  = "validation_timeout_message"
	KeyValidationError       = "validation_error"
	KeyNoRemotesFound        = "no_remotes_found"
	KeyNoRemotesFoundMessage = "no_remotes_found_message"
	KeyErrorSavingConfig     = "error_saving_config"
	KeyErrorStartup          = "error_startup"
)

// Supported language codes
const (
	LangSystem = "system"
	LangEN     = "en"
	LangRU     = "ru"
	LangPT     = "pt"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LangEN,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == LangSystem {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[LangEN]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns localized text for key formatted with args
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LangEN: "English",
		LangRU: "Русский",
		LangPT: "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts[LangEN] = map[string]string{
		KeyAppTitle: "Cloud Drives",
		KeySave:     "Save",
		KeyCancel:   "Cancel",
		KeyRemove:   "Remove",
		KeyAdd:      "Add",
		KeyOK:       "OK",
		KeyNoDrives: "No drives configured. Click + to add one.",

		KeyShow:      "Show",
		KeyHide:      "Hide",
		KeyStayOnTop: "Stay on Top",
		KeyRefresh:   "Refresh",
		KeyQuit:      "Quit",

		KeyAppSettings:       "App Settings",
		KeyAutoRefresh:       "Auto-Refresh",
		KeyEnableAutoRefresh: "Enable auto-refresh",
		KeyRefreshInterval:   "Refresh interval (minutes)",
		KeyWindow:            "Window",
		KeyRunAtStartup:      "Run at startup",
		KeyLanguage:          "Language",
		KeyRclonePath:        "rclone executable",
		KeyConfigFile:        "Config file",
		KeyOpenConfigFolder:  "Open folder",
		KeyInvalidInterval:   "Interval must be between %d and %d minutes",
		KeyDebugLogging:      "Debug logging",

		KeyDisplayName:      "Display name",
		KeyDisplayNameEmpty: "Display name cannot be empty",
		KeyDropHere:         "Drop here",

		KeySetupTitle:        "Setup Cloud Drives",
		KeySetupInstructions: "Select the cloud drives you want to monitor, or add a new one manually.",
		KeyAvailableRemotes:  "Available Rclone Remotes:",
		KeyManualRemote:      "Remote name (e.g. mydrive:)",
		KeyValidating:        "Checking remote...",

		KeyRcloneNotFound:        "rclone Not Found",
		KeyRcloneNotFoundMessage: "rclone is not installed or not in PATH.\n\nPlease install rclone from https://rclone.org/install/",
		KeyRemoteNotFound:        "Remote Not Found",
		KeyRemoteNotFoundMessage: "The remote '%s' has not been set up in rclone.\n\nPlease configure this remote using 'rclone config' before adding it.",
		KeyValidationTimeout:     "Validation Timeout",
		KeyValidationTimeoutMsg:  "Timeout while validating remote '%s'.\n\nPlease check your rclone configuration and try again.",
		KeyValidationError:       "Validation Error",
		KeyNoRemotesFound:        "No Remotes Found",
		KeyNoRemotesFoundMessage: "No rclone remotes found. Please configure rclone first.",
		KeyErrorSavingConfig:     "Could not save settings",
		KeyErrorStartup:          "Could not change startup setting",
	}

	// Russian texts
	l.texts[LangRU] = map[string]string{
		KeyAppTitle: "Облачные диски",
		KeySave:     "Сохранить",
		KeyCancel:   "Отмена",
		KeyRemove:   "Удалить",
		KeyAdd:      "Добавить",
		KeyOK:       "OK",
		KeyNoDrives: "Нет дисков. Нажмите +, чтобы добавить.",

		KeyShow:      "Показать",
		KeyHide:      "Скрыть",
		KeyStayOnTop: "Поверх всех окон",
		KeyRefresh:   "Обновить",
		KeyQuit:      "Выход",

		KeyAppSettings:       "Настройки приложения",
		KeyAutoRefresh:       "Автообновление",
		KeyEnableAutoRefresh: "Включить автообновление",
		KeyRefreshInterval:   "Интервал обновления (минуты)",
		KeyWindow:            "Окно",
		KeyRunAtStartup:      "Запускать при входе",
		KeyLanguage:          "Язык",
		KeyRclonePath:        "Путь к rclone",
		KeyConfigFile:        "Файл настроек",
		KeyOpenConfigFolder:  "Открыть папку",
		KeyInvalidInterval:   "Интервал должен быть от %d до %d минут",
		KeyDebugLogging:      "Подробный журнал",

		KeyDisplayName:      "Отображаемое имя",
		KeyDisplayNameEmpty: "Имя не может быть пустым",
		KeyDropHere:         "Переместить сюда",

		KeySetupTitle:        "Настройка дисков",
		KeySetupInstructions: "Выберите диски для отслеживания или добавьте новый вручную.",
		KeyAvailableRemotes:  "Доступные remotes rclone:",
		KeyManualRemote:      "Имя remote (например, mydrive:)",
		KeyValidating:        "Проверка remote...",

		KeyRcloneNotFound:        "rclone не найден",
		KeyRcloneNotFoundMessage: "rclone не установлен или отсутствует в PATH.\n\nУстановите rclone: https://rclone.org/install/",
		KeyRemoteNotFound:        "Remote не найден",
		KeyRemoteNotFoundMessage: "Remote '%s' не настроен в rclone.\n\nНастройте его командой 'rclone config' перед добавлением.",
		KeyValidationTimeout:     "Превышено время ожидания",
		KeyValidationTimeoutMsg:  "Превышено время проверки remote '%s'.\n\nПроверьте настройки rclone и попробуйте снова.",
		KeyValidationError:       "Ошибка проверки",
		KeyNoRemotesFound:        "Remotes не найдены",
		KeyNoRemotesFoundMessage: "rclone не вернул ни одного remote. Сначала настройте rclone.",
		KeyErrorSavingConfig:     "Не удалось сохранить настройки",
		KeyErrorStartup:          "Не удалось изменить автозапуск",
	}

	// Portuguese texts
	l.texts[LangPT] = map[string]string{
		KeyAppTitle: "Drives na Nuvem",
		KeySave:     "Salvar",
		KeyCancel:   "Cancelar",
		KeyRemove:   "Remover",
		KeyAdd:      "Adicionar",
		KeyOK:       "OK",
		KeyNoDrives: "Nenhum drive configurado. Clique em + para adicionar.",

		KeyShow:      "Mostrar",
		KeyHide:      "Ocultar",
		KeyStayOnTop: "Sempre no topo",
		KeyRefresh:   "Atualizar",
		KeyQuit:      "Sair",

		KeyAppSettings:       "Configurações do App",
		KeyAutoRefresh:       "Atualização automática",
		KeyEnableAutoRefresh: "Ativar atualização automática",
		KeyRefreshInterval:   "Intervalo (minutos)",
		KeyWindow:            "Janela",
		KeyRunAtStartup:      "Iniciar com o sistema",
		KeyLanguage:          "Idioma",
		KeyRclonePath:        "Executável do rclone",
		KeyConfigFile:        "Arquivo de configuração",
		KeyOpenConfigFolder:  "Abrir pasta",
		KeyInvalidInterval:   "O intervalo deve estar entre %d e %d minutos",
		KeyDebugLogging:      "Log detalhado",

		KeyDisplayName:      "Nome de exibição",
		KeyDisplayNameEmpty: "O nome não pode ficar vazio",
		KeyDropHere:         "Soltar aqui",

		KeySetupTitle:        "Configurar Drives",
		KeySetupInstructions: "Selecione os drives que deseja monitorar ou adicione um manualmente.",
		KeyAvailableRemotes:  "Remotes do rclone disponíveis:",
		KeyManualRemote:      "Nome do remote (ex.: mydrive:)",
		KeyValidating:        "Verificando remote...",

		KeyRcloneNotFound:        "rclone não encontrado",
		KeyRcloneNotFoundMessage: "O rclone não está instalado ou não está no PATH.\n\nInstale o rclone: https://rclone.org/install/",
		KeyRemoteNotFound:        "Remote não encontrado",
		KeyRemoteNotFoundMessage: "O remote '%s' não foi configurado no rclone.\n\nConfigure-o com 'rclone config' antes de adicioná-lo.",
		KeyValidationTimeout:     "Tempo esgotado",
		KeyValidationTimeoutMsg:  "Tempo esgotado ao validar o remote '%s'.\n\nVerifique a configuração do rclone e tente novamente.",
		KeyValidationError:       "Erro de validação",
		KeyNoRemotesFound:        "Nenhum remote encontrado",
		KeyNoRemotesFoundMessage: "Nenhum remote do rclone encontrado. Configure o rclone primeiro.",
		KeyErrorSavingConfig:     "Não foi possível salvar as configurações",
		KeyErrorStartup:          "Não foi possível alterar a inicialização",
	}
}

var supportedLanguages = language.NewMatcher([]language.Tag{
	language.English,
	language.Russian,
	language.Portuguese,
})

// systemLanguage matches the OS locale against the available translations
func systemLanguage() string {
	tag, _, confidence := supportedLanguages.Match(language.Make(lang.SystemLocale().LanguageString()))
	if confidence == language.No {
		return LangEN
	}
	base, _ := tag.Base()
	return base.String()
}
