package jsonfile

import (
	"fmt"
	"os"
	"time"

	"github.com/ria-intl/airportd/internal/aircraft"
	"github.com/ria-intl/airportd/internal/airport"
	"github.com/ria-intl/airportd/internal/flight"
)

// seedIfEmpty creates sample reference data on first run so the system is
// usable out of the box. Existing files are never overwritten.
func (s *Store) seedIfEmpty() error {
	if _, err := os.Stat(s.path(airportsFile)); os.IsNotExist(err) {
		if err := s.SaveAirports(sampleAirports()); err != nil {
			return err
		}
		s.logger.Info("Created sample airports")
	}

	if _, err := os.Stat(s.path(aircraftFile)); os.IsNotExist(err) {
		if err := s.SaveAircraft(sampleAircraft()); err != nil {
			return err
		}
		s.logger.Info("Created sample aircraft")
	}

	if _, err := os.Stat(s.path(flightsFile)); os.IsNotExist(err) {
		fleet, err := s.LoadAircraft()
		if err != nil {
			return err
		}
		if len(fleet) == 0 {
			return fmt.Errorf("no aircraft available for sample flights")
		}
		if err := s.SaveFlights(sampleFlights(fleet)); err != nil {
			return err
		}
		s.logger.Info("Created sample flights")
	}

	return nil
}

func sampleAirports() []*airport.Airport {
	return []*airport.Airport{
		airport.New("LAX", "KLAX", "Los Angeles International Airport", "Los Angeles", "United States", "America/Los_Angeles", 33.9425, -118.4081, 38),
		airport.New("JFK", "KJFK", "John F. Kennedy International Airport", "New York", "United States", "America/New_York", 40.6413, -73.7781, 4),
		airport.New("LHR", "EGLL", "Heathrow Airport", "London", "United Kingdom", "Europe/London", 51.4700, -0.4543, 25),
		airport.New("CDG", "LFPG", "Charles de Gaulle Airport", "Paris", "France", "Europe/Paris", 49.0097, 2.5479, 119),
		airport.New("NRT", "RJAA", "Narita International Airport", "Tokyo", "Japan", "Asia/Tokyo", 35.7653, 140.3856, 43),
		airport.New("DXB", "OMDB", "Dubai International Airport", "Dubai", "United Arab Emirates", "Asia/Dubai", 25.2532, 55.3657, 20),
	}
}

func sampleAircraft() []*aircraft.Aircraft {
	return []*aircraft.Aircraft{
		aircraft.New("N123RIA", "Boeing 737-800", "Boeing", 2020),
		aircraft.New("N456RIA", "Airbus A320", "Airbus", 2019),
		aircraft.New("N789RIA", "Boeing 777-300", "Boeing", 2021),
		aircraft.New("N101RIA", "Airbus A380", "Airbus", 2018),
		aircraft.New("N202RIA", "Boeing 737-800", "Boeing", 2022),
		aircraft.New("N303RIA", "Airbus A320", "Airbus", 2023),
	}
}

func sampleFlights(fleet []*aircraft.Aircraft) []*flight.Flight {
	routes := []struct {
		origin, destination, number string
	}{
		{"LAX", "JFK", "RIA101"},
		{"JFK", "LHR", "RIA201"},
		{"LHR", "CDG", "RIA301"},
		{"CDG", "NRT", "RIA401"},
		{"NRT", "DXB", "RIA501"},
		{"DXB", "LAX", "RIA601"},
		{"LAX", "CDG", "RIA701"},
		{"JFK", "NRT", "RIA801"},
		{"LHR", "DXB", "RIA901"},
		{"CDG", "LAX", "RIA001"},
	}
	gates := []string{"A1", "A2", "B3", "B4", "C5", "C6", "D7", "D8", "E9", "E10"}

	baseTime := time.Now().Add(2 * time.Hour)
	flights := make([]*flight.Flight, 0, len(routes))

	for i, route := range routes {
		frame := fleet[i%len(fleet)]
		departure := baseTime.Add(time.Duration(i*3) * time.Hour)
		arrival := departure.Add(time.Duration(8+i%4) * time.Hour)

		f := flight.New(route.number, "RIA International Airways", route.origin, route.destination, departure, arrival, frame.ID, frame.TotalCapacity)

		switch i % 4 {
		case 1:
			f.SetDelay(15)
		case 3:
			f.SetDelay(30)
		}
		f.SetGate(gates[i%len(gates)])

		flights = append(flights, f)
	}

	return flights
}
