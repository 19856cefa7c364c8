package i18n

import (
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
)

// EnvLang overrides locale detection.
const EnvLang = "POMODORODECK_LANG"

var lang = "en"

var supported = []string{"pt", "es", "ru"}

var translations = map[string]map[string]string{
	"Timer 1 Duration (minutes)": {
		"pt": "Duração do timer 1 (minutos)",
		"es": "Duración del temporizador 1 (minutos)",
		"ru": "Длительность таймера 1 (минуты)",
	},
	"Focus timer duration": {
		"pt": "Duração do timer de foco",
		"es": "Duración del temporizador de enfoque",
		"ru": "Длительность таймера фокуса",
	},
	"Timer 2 Duration (minutes)": {
		"pt": "Duração do timer 2 (minutos)",
		"es": "Duración del temporizador 2 (minutos)",
		"ru": "Длительность таймера 2 (минуты)",
	},
	"Rest timer duration": {
		"pt": "Duração do timer de descanso",
		"es": "Duración del temporizador de descanso",
		"ru": "Длительность таймера отдыха",
	},
	"Timer 1 Label": {
		"pt": "Rótulo do timer 1",
		"es": "Etiqueta del temporizador 1",
		"ru": "Подпись таймера 1",
	},
	"Name shown for focus timer": {
		"pt": "Nome exibido no timer de foco",
		"es": "Nombre mostrado para el enfoque",
		"ru": "Название таймера фокуса",
	},
	"Timer 2 Label": {
		"pt": "Rótulo do timer 2",
		"es": "Etiqueta del temporizador 2",
		"ru": "Подпись таймера 2",
	},
	"Name shown for rest timer": {
		"pt": "Nome exibido no timer de descanso",
		"es": "Nombre mostrado para el descanso",
		"ru": "Название таймера отдыха",
	},
	"Enable blinking": {
		"pt": "Ativar piscar",
		"es": "Activar parpadeo",
		"ru": "Включить мигание",
	},
	"Blink between colors when finished": {
		"pt": "Alternar cores ao terminar",
		"es": "Alternar colores al terminar",
		"ru": "Мигать цветами по окончании",
	},
	"Color 1": {
		"pt": "Cor 1",
		"es": "Color 1",
		"ru": "Цвет 1",
	},
	"Primary finish color": {
		"pt": "Cor principal ao terminar",
		"es": "Color principal al terminar",
		"ru": "Основной цвет окончания",
	},
	"Color 2": {
		"pt": "Cor 2",
		"es": "Color 2",
		"ru": "Цвет 2",
	},
	"Secondary blink color": {
		"pt": "Cor secundária do piscar",
		"es": "Color secundario del parpadeo",
		"ru": "Второй цвет мигания",
	},
	"Pomodoro Deck": {
		"pt": "Pomodoro Deck",
		"es": "Pomodoro Deck",
		"ru": "Помодоро Дек",
	},
	"Settings": {
		"pt": "Configurações",
		"es": "Ajustes",
		"ru": "Настройки",
	},
	"Configure": {
		"pt": "Configurar",
		"es": "Configurar",
		"ru": "Настроить",
	},
	"Show deck": {
		"pt": "Mostrar deck",
		"es": "Mostrar deck",
		"ru": "Показать деку",
	},
	"Configure key": {
		"pt": "Configurar tecla",
		"es": "Configurar tecla",
		"ru": "Настроить клавишу",
	},
	"Configure dial": {
		"pt": "Configurar dial",
		"es": "Configurar dial",
		"ru": "Настроить регулятор",
	},
	"Quit": {
		"pt": "Sair",
		"es": "Salir",
		"ru": "Выход",
	},
	"Close": {
		"pt": "Fechar",
		"es": "Cerrar",
		"ru": "Закрыть",
	},
	"Pick a color": {
		"pt": "Escolha uma cor",
		"es": "Elige un color",
		"ru": "Выберите цвет",
	},
	"Enter a whole number": {
		"pt": "Digite um número inteiro",
		"es": "Introduce un número entero",
		"ru": "Введите целое число",
	},
	"Idle": {
		"pt": "Parado",
		"es": "Detenido",
		"ru": "Ожидание",
	},
	"Running": {
		"pt": "Rodando",
		"es": "En marcha",
		"ru": "Идёт",
	},
	"Finished": {
		"pt": "Terminado",
		"es": "Terminado",
		"ru": "Завершено",
	},
	"Time is up": {
		"pt": "Tempo esgotado",
		"es": "Se acabó el tiempo",
		"ru": "Время вышло",
	},
}

// Setup selects the UI language: the POMODORODECK_LANG override first,
// then the first system locale, then English.
func Setup() {
	if forcedLang := strings.TrimSpace(os.Getenv(EnvLang)); forcedLang != "" {
		log.Printf("%s is set to: '%s'", EnvLang, forcedLang)
		lang = Match(forcedLang)
		return
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Printf("could not get user locale, defaulting to english: %v", err)
		lang = "en"
		return
	}
	if len(userLocales) == 0 {
		log.Println("no user locale detected, defaulting to english")
		lang = "en"
		return
	}

	log.Printf("detected user locale: %s", userLocales[0])
	lang = Match(userLocales[0])
	log.Printf("language set to: %s", lang)
}

// Match maps a locale tag such as "pt_BR" or "es-ES" to a supported
// language, or "en".
func Match(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, candidate := range supported {
		if strings.HasPrefix(tag, candidate) {
			return candidate
		}
	}
	return "en"
}

// SetLang forces the active language.
func SetLang(value string) {
	lang = Match(value)
}

func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

func GetLang() string {
	return lang
}
