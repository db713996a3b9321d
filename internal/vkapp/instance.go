package vkapp

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2"
	"github.com/vkngwrapper/vulkan-demos/internal/vkutil"
)

var validationLayers = []string{"VK_LAYER_KHRONOS_validation"}

func (app *App) createInstance() error {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    app.cfg.Window.Title,
		ApplicationVersion: common.CreateVersion(1, 0, 0),
		EngineName:         "No Engine",
		EngineVersion:      common.CreateVersion(1, 0, 0),
		APIVersion:         common.Vulkan1_2,
	}

	sdlExtensions := app.window.VulkanGetInstanceExtensions()
	extensions, _, err := app.loader.AvailableExtensions()
	if err != nil {
		return err
	}

	for _, ext := range sdlExtensions {
		_, hasExt := extensions[ext]
		if !hasExt {
			return errors.Newf("cannot initialize sdl: missing instance extension %s", ext)
		}
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext)
	}

	if app.cfg.Vulkan.Validation {
		_, hasDebugUtils := extensions[ext_debug_utils.ExtensionName]
		if !hasDebugUtils {
			return errors.Newf("cannot enable validation: missing instance extension %s", ext_debug_utils.ExtensionName)
		}
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext_debug_utils.ExtensionName)
	}

	portability, flags := vkutil.PortabilityEnumeration(extensions)
	instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, portability...)
	instanceOptions.Flags |= flags

	if app.cfg.Vulkan.Validation {
		layers, _, err := app.loader.AvailableLayers()
		if err != nil {
			return err
		}

		for _, layer := range validationLayers {
			_, hasValidation := layers[layer]
			if !hasValidation {
				return errors.Newf("cannot add validation layer %s: not available, install the Vulkan SDK or disable validation", layer)
			}
			instanceOptions.EnabledLayerNames = append(instanceOptions.EnabledLayerNames, layer)
		}

		// Covers messages from instance creation and destruction.
		instanceOptions.Next = app.debugMessengerOptions()
	}

	app.instance, _, err = app.loader.CreateInstance(nil, instanceOptions)
	if err != nil {
		return err
	}

	app.log.Debug("instance created",
		slog.Int("extensions", len(instanceOptions.EnabledExtensionNames)),
		slog.Bool("validation", app.cfg.Vulkan.Validation))

	return nil
}

func (app *App) debugMessengerOptions() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning | ext_debug_utils.SeverityInfo | ext_debug_utils.SeverityVerbose,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    app.logDebug,
	}
}

func (app *App) setupDebugMessenger() error {
	if !app.cfg.Vulkan.Validation {
		return nil
	}

	var err error
	debugLoader := ext_debug_utils.CreateExtensionFromInstance(app.instance)
	app.debugMessenger, _, err = debugLoader.CreateDebugUtilsMessenger(app.instance, nil, app.debugMessengerOptions())
	if err != nil {
		return err
	}

	return nil
}

func (app *App) logDebug(msgType ext_debug_utils.MessageTypes, severity ext_debug_utils.MessageSeverities, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	app.log.Log(context.Background(), vkutil.SeverityLevel(severity), data.Message,
		slog.Any("type", msgType),
		slog.Any("severity", severity))
	return false
}

func (app *App) createSurface() error {
	surfaceLoader := vkng_sdl2.CreateExtensionFromInstance(app.instance)

	surface, _, err := surfaceLoader.CreateSurface(app.instance, app.window)
	if err != nil {
		return err
	}

	app.surface = surface
	return nil
}
