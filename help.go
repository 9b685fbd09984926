package main

const version = "pnmstretch 1.0.0"

const detailedHelp = `pnmstretch — растяжение контраста изображений P5/P6 по гистограмме.

Использование:
  pnmstretch [опции] <threads> <input> <output> <threshold>

Аргументы:
  threads     число потоков, 0 — все доступные процессоры
  input       входной файл P5 (оттенки серого) или P6 (RGB), 8 бит на канал
  output      выходной файл в том же формате
  threshold   доля пикселей в [0, 1], отсекаемая с каждого края диапазона

Опции:
  -s, --show              показать исходное и обработанное изображения
  -e, --export <файл>     дополнительно сохранить результат (.png, .bmp, .tif)
      --tail-mode <mode>  pooled — хвосты каналов складываются,
                          any — достаточно превышения в любом канале
      --preview-size <n>  наибольшая сторона окна просмотра (1024)
      --log-level <lvl>   debug, info, warn, error
  -c, --config <файл>     INI-файл с настройками (секция [Application Options])
  -v, --version           показать версию и выйти
  -h, --help              показать эту справку

Каждая опция также читается из переменной окружения PNMSTRETCH_<ОПЦИЯ>,
например PNMSTRETCH_TAIL_MODE=any.

Алгоритм:
  1. Буфер делится на порции по 16384 пикселя. Каждый поток считает
     гистограммы своих порций в локальных массивах и один раз под мьютексом
     добавляет их к общим.
  2. n = floor(threshold * width * height). Проход от краёв диапазона
     к центру находит нижнюю границу low (первое значение, где нижний хвост
     превысил n) и верхнюю границу high (то же для верхнего хвоста).
  3. Таблица: значения <= low переходят в 0, >= high — в 255, остальные
     растягиваются линейно. Если low == high, всё изображение переходит в high.
  4. Таблица применяется ко всем каналам параллельно.

После обработки печатается время работы ядра и число потоков.
`
