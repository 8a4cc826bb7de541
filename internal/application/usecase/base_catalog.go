package usecase

type baseItem struct {
	id, name, short, ingredients, conditions string
	price                                    int64
}

type baseCategory struct {
	id, name, description string
	items                 []baseItem
}

// baseCatalog catálogo base del servicio de alimentación: cinco líneas de negocio con sus
// productos de referencia. Precio 0 = se cotiza por contrato.
var baseCatalog = []baseCategory{
	{
		id:          "alimentacion-transportada",
		name:        "Alimentación transportada",
		description: "Menús diarios preparados en cocina central y transportados a tu empresa con control de temperatura.",
		items: []baseItem{
			{"almuerzo-tradicional", "Almuerzo tradicional", "Plato principal, acompañamiento, postre y pan.", "Carne o pollo, arroz o papas, ensalada estacional.", "Entrega antes de las 13:00 hrs. Consumo inmediato.", 5500},
			{"almuerzo-vegetariano", "Almuerzo vegetariano", "Opción equilibrada sin carnes.", "Proteína vegetal (legumbres, tofu), cereales, verduras frescas.", "Entrega antes de las 13:00 hrs. Ideal para dietas sin carne.", 5600},
			{"almuerzo-vegano", "Almuerzo vegano", "Preparación 100% libre de insumos de origen animal.", "Legumbres, granos, verduras, aceites vegetales, frutos secos.", "Entrega antes de las 13:00 hrs. Consumir en 2 horas.", 5800},
			{"almuerzo-hipocalorico", "Almuerzo hipocalórico", "Menú bajo en calorías, con enfoque saludable.", "Proteína magra, verduras al vapor, porciones controladas de carbohidratos.", "Entrega antes de las 13:00 hrs. Para planes de control de peso.", 5900},
			{"menu-especial-dia", "Menú especial del día", "Preparación destacada según temporada o temática.", "Inspiración del chef: puede incluir carnes, pastas o preparaciones típicas.", "Se debe solicitar con 24 horas de anticipación para grupos.", 6200},
		},
	},
	{
		id:          "servicio-presencial",
		name:        "Servicio presencial en sucursales",
		description: "Operación de casino en sitio con personal, montaje de línea y atención continua.",
		items: []baseItem{
			{"linea-completa", "Línea de servicio completa", "Autoservicio con platos calientes, ensaladas y postres.", "Variedad diaria de preparaciones calientes, frías y dulces.", "Servicio continuo en horario acordado. Incluye equipo de atención.", 0},
			{"desayuno-corporativo", "Desayuno corporativo", "Servicio presencial de desayunos para colaboradores.", "Café, té, lácteos, panes, frutas, repostería simple, jugos.", "Horario entre 7:30 y 10:00. Mínimo de personas a convenir.", 0},
			{"colaciones-turnos", "Colaciones para turnos", "Opciones para turnos nocturnos o extendidos.", "Preparaciones individuales empaquetadas y listas para consumir.", "Entrega según planificación de turnos, con reposición programada.", 0},
			{"modulo-ensaladas", "Módulo de ensaladas", "Barra de ensaladas frescas y toppings.", "Verduras frescas, legumbres, cereales, aderezos.", "Requiere punto de refrigeración y personal de reposición.", 0},
			{"servicio-colacion-rapida", "Servicio de colación rápida", "Snack salado, dulce y bebidas para pausas breves.", "Sándwiches fríos, barritas, frutas, bebidas.", "Disponible en horarios punta. Se adapta a volumen de personal.", 0},
		},
	},
	{
		id:          "concesion-casinos",
		name:        "Concesión de casinos (colegios/universidades)",
		description: "Administración completa de casinos educacionales bajo normas vigentes.",
		items: []baseItem{
			{"menu-escolar-basico", "Menú escolar básico", "Almuerzo completo según lineamientos nutricionales.", "Preparación principal, acompañamiento, postre y jugo.", "Cumple con normativas de alimentación escolar. Entrega en comedor.", 0},
			{"menu-escolar-especial", "Menú escolar especial", "Opciones adaptadas para alergias o restricciones.", "Preparaciones sin gluten, sin lactosa u otras restricciones.", "Requiere registro médico y coordinación con la institución.", 0},
			{"menu-universitario", "Menú universitario", "Platos rápidos, contundentes y a precio accesible.", "Pastas, bowls, menús del día, opciones vegetarianas.", "Servicio en línea de casino y puntos de venta anexos.", 0},
			{"colacion-manana", "Colación de mañana", "Snack energético para recreos y pausas.", "Fruta, snack saludable y bebida ligera.", "Distribución en recreos definidos por el establecimiento.", 0},
			{"colacion-tarde", "Colación de tarde", "Alternativa ligera para la jornada vespertina.", "Sándwich, fruta y bebida.", "Disponible en jornada completa o vespertina.", 0},
		},
	},
	{
		id:          "coffee-break-eventos",
		name:        "Coffee break y eventos",
		description: "Servicios para reuniones, capacitaciones, seminarios y celebraciones empresariales.",
		items: []baseItem{
			{"sandwiches", "Selección de sándwiches", "Mini sándwiches fríos y calientes.", "Jamón, queso, vegetales, salsas suaves, panes variados.", "Entrega y montaje 30–45 min antes del inicio del evento.", 4500},
			{"jugos-naturales", "Jugos naturales", "Jugos de fruta natural en dispenser o botellas individuales.", "Naranja, piña, frutos rojos, agua purificada.", "Refrigeración durante el evento. Incluye vasos y hielo si se requiere.", 3000},
			{"reposteria-mixta", "Repostería mixta", "Variedad de dulces de tamaño petit.", "Queques, brownies, tartaletas, galletas.", "Presentación en bandejas o mesas de servicio.", 4200},
			{"colaciones-dulces", "Colaciones dulces", "Snacks dulces individuales.", "Barritas, galletas, chocolates, frutos secos.", "Ideal para media mañana y media tarde.", 3800},
			{"colaciones-saladas", "Colaciones saladas", "Snacks salados para pausas o reuniones largas.", "Mix de frutos secos, chips, mini empanadas.", "Se entrega en envases individuales o bandejas compartidas.", 3800},
		},
	},
	{
		id:          "reposteria-snack",
		name:        "Repostería y snack con tickets",
		description: "Productos individuales para consumo con tickets o vales de alimentación.",
		items: []baseItem{
			{"queques", "Queques individuales", "Queques de vainilla, naranja y zanahoria.", "Harina, huevos, azúcar, saborizantes naturales.", "Vida útil de 2–3 días. Mantener en lugar fresco.", 1500},
			{"tortas-porcion", "Tortas por porción", "Porciones individuales de torta del día.", "Bizcocho, crema, rellenos variados.", "Refrigerar hasta su consumo. Ideal para celebraciones.", 2200},
			{"galletas", "Galletas artesanales", "Galletas dulces variadas.", "Harina, mantequilla, azúcar, chips de chocolate, avena.", "En envase individual sellado, vida útil hasta 7 días.", 1200},
			{"brownies", "Brownies", "Brownies de chocolate en formato snack.", "Cacao, mantequilla, azúcar, harina, nueces (opcional).", "Presentación individual, ideal para coffee break o colación.", 1600},
			{"muffins", "Muffins surtidos", "Muffins de arándano, chocolate y vainilla.", "Harina, huevos, azúcar, frutas y saborizantes.", "Consumo ideal dentro de 48 horas desde la entrega.", 1600},
		},
	},
}
